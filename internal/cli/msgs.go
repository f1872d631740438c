package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "A multicast callback container and its drivers"
	MsgDemoShort       = "Walk through every delegate operation and check the results"
	MsgBenchShort      = "Time delegate invocation against a plain func slice"
	MsgGenConfigShort  = "Generate the default configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"
	MsgTopicsShort     = "Display available documentation topics"

	// Status messages
	MsgConfigWritten = "Wrote default configuration to %s"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrConfigExists = "config file already exists at %s (use --force to overwrite)"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default is $XDG_CONFIG_HOME/delegate/config.toml)"
	MsgFlagFormat     = "Output format: auto, term, text, json, yaml, toml, junit"
	MsgFlagIterations = "Number of timed invocations (overrides bench.iterations)"
	MsgFlagWrite      = "Write the config file instead of printing it"
	MsgFlagForce      = "Overwrite an existing config file"
	MsgFlagEffective  = "Print the merged configuration in use"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/demo-long.txt
	msgDemoLongRaw string
	MsgDemoLong    = strings.TrimSpace(msgDemoLongRaw)

	//go:embed msgs/demo-example.txt
	msgDemoExampleRaw string
	MsgDemoExample    = strings.TrimRight(msgDemoExampleRaw, "\n")

	//go:embed msgs/bench-long.txt
	msgBenchLongRaw string
	MsgBenchLong    = strings.TrimSpace(msgBenchLongRaw)

	//go:embed msgs/bench-example.txt
	msgBenchExampleRaw string
	MsgBenchExample    = strings.TrimRight(msgBenchExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
