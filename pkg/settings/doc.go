// Package settings supplies connection configuration to the commander client.
//
// A Provider returns Settings on demand. The client loads them once, on
// first use, so providers may read files or the environment lazily.
// Providers can be layered with Chain:
//
//	provider := settings.Chain{
//	    &settings.EnvProvider{},
//	    &settings.FileProvider{Path: "commander.hcl"},
//	}
//
// Later providers override earlier ones for every field they set.
package settings
