// Package types holds the shared interfaces and values used across
// shellup's packages: the FS abstraction, the CommandRunner and Cloner
// capabilities, the Environment value, and the Plugin descriptor.
package types
