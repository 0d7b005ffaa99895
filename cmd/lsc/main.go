package main

import (
	"flag"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lsc/inherit"
	"github.com/npillmayer/lsc/interp"
	"github.com/npillmayer/lsc/runtime"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracedPackages are the tracer keys the -trace flag applies to.
var tracedPackages = []string{
	"root", "lsc.scanner", "lsc.parser", "lsc.interp", "lsc.runtime",
	"lsc.inherit", "lsc.exports", "lsc.cli",
}

func main() {
	initDisplay()
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	project := flag.String("project", "", "Project root for class scripts")
	strict := flag.Bool("strict", false, "Undefined identifiers are errors")
	flag.Parse()
	initConfig(*tlevel, *project, *strict)
	//
	// set up runtime, interpreter and class resolution
	root := gconf.GetString("lsc.project-root")
	if root == "" {
		root, _ = os.Getwd()
	}
	tracer().Infof("Project root is %s", root)
	projectFS := os.DirFS(root)
	host := runtime.NewMockHost()
	rt := runtime.New(runtime.WithHost(host), runtime.WithFS(projectFS))
	intp := interp.New(rt)
	classes := inherit.NewResolver(rt, intp, projectFS).Install()
	cli := &Intp{rt: rt, intp: intp, host: host, classes: classes}
	//
	// run scripts given as arguments, if any
	if flag.NArg() > 0 {
		failed := false
		for _, script := range flag.Args() {
			if err := cli.LoadFile(script); err != nil {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("lsc> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	cli.repl = repl
	pterm.Info.Println("Welcome to LSC")
	tracer().Infof("Quit with <ctrl>D")
	if *initf != "" {
		cli.LoadFile(*initf)
	}
	cli.REPL()
}

// initConfig reads the configuration file, if any, then applies the flags,
// and sets up tracing.
func initConfig(level, project string, strict bool) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := koanfadapter.New(nil, "lsc", []string{"nt"})
	gconf.Initialize(conf)
	if level != "" {
		for _, key := range tracedPackages {
			conf.Set("tracing."+key, level)
		}
		conf.Set("tracingscripting", level)
	}
	if project != "" {
		conf.Set("lsc.project-root", project)
	}
	if strict {
		conf.Set("lsc.strict-identifiers", true)
	}
	gconf.SetDefaultTracingLevels()
	if err := trace2go.ConfigureRoot(conf, "tracing", trace2go.ReplaceTracers(true)); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
