// Package config provides the configuration of a fernetcrack run: the
// target under attack, the dictionary and transformation sets, the attack
// mode and its bounds, and report and history preferences.
//
// Values come from three layers applied in order: the reference defaults of
// NewConfig, an optional YAML file (see File), and command-line flags.
package config
