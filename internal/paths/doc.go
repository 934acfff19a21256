// Package paths centralizes filesystem locations used by the application.
//
// Directories follow the XDG Base Directory specification via
// [ConfigDir] and [DefaultLogFile]. Use [EnsureDir] before writing into
// any of them, and [ResolveHome] to expand ~ in user-supplied paths.
package paths
