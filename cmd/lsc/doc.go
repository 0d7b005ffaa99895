/*
Command lsc runs LSC scripts, or starts an interactive session (REPL) if no
script is given.

	lsc [-trace level] [-init file] [-project dir] [-strict] [script …]

Scripts run against a mock host with an empty node tree. Class scripts are
looked up in the project directory, which defaults to the configuration
value `lsc.project-root` or the current directory.

Input lines ending in a colon start a block; the block ends with an empty
line. Lines starting with a colon are commands:

	:ast [source]   show the syntax tree of source or of the previous input
	:scope          list global variables
	:exports        list export variables declared so far
	:classes        list the classes resolved so far
	:tick [dt]      advance the host clock and fire due timers
	:load file      run a script file
	:help           list commands
	:quit           leave (or <ctrl>D)

Configuration is read from a NestedText file `lsc.nt` at the usual
configuration locations. Flags override configured values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lsc.cli'
func tracer() tracing.Trace {
	return tracing.Select("lsc.cli")
}
