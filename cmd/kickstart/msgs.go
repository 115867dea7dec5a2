package main

// Messages used by the kickstart CLI.
const (
	MsgShort = "A scaffolding tool for project templates"

	MsgLong = `kickstart instantiates a project template into a new directory.

The template is a directory tree (local path or git URL) whose files and
file names may contain template expressions. A template.toml file at the
root declares the variables to fill in; kickstart asks for each one and
renders the tree with the answers.`

	MsgFlagOutputDir = "Directory to create the project in"
	MsgFlagDirectory = "Subdirectory of the source holding the template"
	MsgFlagNoInput   = "Do not prompt, use defaults for every variable"
	MsgFlagSet       = "Set a variable (name=value), repeatable"

	MsgDone = "Done! %d file(s) created in %s"

	MsgValidateShort = "Check a template.toml file for problems"
	MsgValidateLong  = `Parse the given template.toml file and report every problem found
without generating anything.`
	MsgValidateOK = "The template.toml file is valid"
)
