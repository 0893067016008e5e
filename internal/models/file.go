package models

// Role is the architectural category assigned to a file by the
// entry-point classifier. Exactly one role applies per file.
type Role string

const (
	RoleMain     Role = "main-entry"      // program entry point (main.py, main.go, index.js, ...)
	RoleConfig   Role = "config-entry"    // configuration or build descriptor
	RoleStartup  Role = "startup-script"  // startup/deployment script
	RoleAPIRoute Role = "api-route"       // route/controller/handler/endpoint path
	RoleOther    Role = "other-important" // makefile/jenkinsfile/dockerfile variants
	RoleNone     Role = "none"            // everything else
)

// Marker returns the bold marker text used in report metadata lines,
// or an empty string for RoleNone.
func (r Role) Marker() string {
	switch r {
	case RoleMain:
		return "**MAIN ENTRY POINT**"
	case RoleConfig:
		return "**CONFIGURATION**"
	case RoleStartup:
		return "**STARTUP SCRIPT**"
	case RoleAPIRoute:
		return "**API/ROUTES**"
	case RoleOther:
		return "**BUILD/DEPLOY**"
	default:
		return ""
	}
}

// FileInfo is one candidate file discovered by the scanner.
// Paths are relative to the scan root and use forward slashes.
type FileInfo struct {
	Path    string // relative path from the scan root
	Ext     string // lower-cased extension including the dot ("" when none)
	Size    int64  // size on disk in bytes
	Lines   int    // line count of Content (0 when unreadable)
	Content string // full file text (empty when ReadErr is set)
	ReadErr error  // set when the file could not be read or is not valid UTF-8
}

// EntryPoints buckets the filtered file list by role, preserving
// discovery order within each bucket. Files with RoleNone appear in
// no bucket.
type EntryPoints struct {
	Main           []string
	Config         []string
	Startup        []string
	APIRoutes      []string
	OtherImportant []string
}

// RoleOf returns the role assigned to a path, checking buckets in
// precedence order. RoleNone when the path is in no bucket.
func (ep *EntryPoints) RoleOf(path string) Role {
	switch {
	case containsPath(ep.Main, path):
		return RoleMain
	case containsPath(ep.Config, path):
		return RoleConfig
	case containsPath(ep.Startup, path):
		return RoleStartup
	case containsPath(ep.APIRoutes, path):
		return RoleAPIRoute
	case containsPath(ep.OtherImportant, path):
		return RoleOther
	default:
		return RoleNone
	}
}

func containsPath(paths []string, p string) bool {
	for _, candidate := range paths {
		if candidate == p {
			return true
		}
	}
	return false
}
