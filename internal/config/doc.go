// Package config loads todoboard settings.
//
// Values are layered, each source overriding the one before it: built-in
// defaults, the user file, the project file, TODOBOARD_* environment
// variables, then command-line flags. LoadWithSources records which layer
// supplied every field.
//
// The user file is ~/.todoboard/todoboard.toml, or todoboard/todoboard.toml
// under the OS config directory (%APPDATA%, ~/Library/Application Support,
// or $XDG_CONFIG_HOME). The project file is todoboard.toml or
// .todoboard.toml in the working directory.
package config
