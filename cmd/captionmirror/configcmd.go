package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/randalmurphal/captionmirror/config"
)

func configCmd(_ context.Context, e *env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: captionmirror config list|get|set|unset")
	}

	switch args[0] {
	case "list":
		return configList(e)
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: captionmirror config get KEY")
		}
		value, source := e.resolver.Resolve().GetWithSource(args[1])
		if source == "" {
			return fmt.Errorf("unknown key %q", args[1])
		}
		fmt.Fprintln(e.stdout, value)
		return nil
	case "set":
		return configSet(e, args[1:])
	case "unset":
		if len(args) != 2 {
			return fmt.Errorf("usage: captionmirror config unset KEY")
		}
		return config.NewAppSaveConfig().DeleteGlobalKey(args[1])
	default:
		return fmt.Errorf("unknown config command %q", args[0])
	}
}

func configList(e *env) error {
	resolved := e.resolver.Resolve()

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, key := range resolved.Keys() {
		value, source := resolved.GetWithSource(key)
		if config.IsSecret(key) && value != "" {
			value = "********"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, value, source)
	}
	return tw.Flush()
}

func configSet(e *env, args []string) error {
	fs := flag.NewFlagSet("config set", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	local := fs.Bool("local", false, "write to "+config.LocalConfigName+" in the current directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: captionmirror config set [-local] KEY VALUE")
	}
	key, value := fs.Arg(0), fs.Arg(1)

	saver := config.NewAppSaveConfig()
	if *local {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		return saver.SaveLocal(dir, key, value)
	}
	return saver.SaveGlobal(key, value)
}
