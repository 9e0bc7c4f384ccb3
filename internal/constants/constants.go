// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Application identity
const (
	AppName = "vconsole"
	// EnvPrefix prefixes every environment variable read by the application
	EnvPrefix = "VCONSOLE"
)

// Configuration defaults
const (
	DefaultConfigFile   = "config.toml"
	DefaultSection      = "DEFAULT"
	DefaultComputerName = "MyVirtualMachine"
	DefaultVFSPath      = ""
	DefaultLogFile      = "log.txt"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// VFSDirName is the folder archives are extracted into, relative to the
// session directory at the time of loading.
const VFSDirName = "vfs"

// DefaultExtractTimeout bounds a single archive extraction
const DefaultExtractTimeout = 5 * time.Minute

// Messages rendered by the console
const (
	MsgDirectoryNotFound = "Directory not found."
	MsgNotRecognized     = "Command not recognized."
	MsgCdUsage           = "cd requires a directory argument."
)
