// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface; the Viper implementation
// reads a YAML file and lets environment variables override any key.
package pkgconfig
