package main

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.senan.xyz/flagconf"
	"go.senan.xyz/table/table"

	"github.com/taggtool/tagg"
	"github.com/taggtool/tagg/cmd/internal/logging"
	"github.com/taggtool/tagg/edit"
	"github.com/taggtool/tagg/pathformat"
	"github.com/taggtool/tagg/release"
)

var (
	cError   = color.New(color.FgRed)
	cSuccess = color.New(color.FgGreen)
	cLabel   = color.New(color.FgGreen, color.Bold)
)

// replaced while testing
var prompter edit.Prompter = edit.Terminal{}

var dmp = diffmatchpatch.New()

func main() {
	flag.CommandLine.Init(tagg.Name, flag.ExitOnError)
	logging.Setup()

	userConfig, _ := os.UserConfigDir()
	defaultConfigPath := filepath.Join(userConfig, tagg.Name, "config")

	source := flag.String("source", ".", "source directory")
	dest := flag.String("dest", "res", "destination directory")
	format := flag.String("path-format", pathformat.Default, "go templated path format below the destination")
	configPath := flag.String("config-path", defaultConfigPath, "path to config file")
	printVersion := flag.Bool("version", false, "print the version and exit")

	flag.Parse()
	flagconf.ReadEnvPrefix = func(_ *flag.FlagSet) string { return tagg.Name }
	flagconf.ParseEnv()
	flagconf.ParseConfig(*configPath)

	if *printVersion {
		fmt.Printf("%s %s\n", flag.CommandLine.Name(), tagg.Version)
		os.Exit(0)
	}

	if err := run(*source, *dest, *format); err != nil {
		if errors.Is(err, edit.ErrCancelled) {
			fmt.Println("^C")
			os.Exit(0)
		}
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(source, dest, format string) error {
	source, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("make source abs: %w", err)
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("make dest abs: %w", err)
	}

	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return fmt.Errorf("no such directory: %s", source)
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s", tagg.ErrDestExists, dest)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat dest: %w", err)
	}

	pf, err := pathformat.New(dest, format)
	if err != nil {
		return fmt.Errorf("parse path format: %w", err)
	}

	paths, err := tagg.FindFiles(source)
	if errors.Is(err, tagg.ErrNoTracks) {
		return fmt.Errorf("there are no mp3 files in %s", source)
	} else if err != nil {
		return err
	}

	printField("Source", source)
	printField("Destination", dest)

	files, err := tagg.ReadFiles(paths)
	if err != nil {
		return err
	}

	readers := make([]release.Reader, 0, len(files))
	for _, f := range files {
		readers = append(readers, f)
	}
	common := release.Common(readers)
	items := release.Items(readers)

	for _, f := range files {
		f.Close()
	}

	commonBefore := maps.Clone(common)
	itemsBefore := make([]map[string]string, len(items))
	for i := range items {
		itemsBefore[i] = maps.Clone(items[i].Tags)
	}

	sets := []map[string]string{common}
	for _, item := range items {
		sets = append(sets, item.Tags)
	}
	session := edit.NewSession(prompter, sets...)

	fmt.Println()
	if err := session.Edit(release.CommonFields, common); err != nil {
		return err
	}
	for _, item := range items {
		fmt.Println()
		printField("File", filepath.Base(item.Path))
		if err := session.Edit(release.ItemFields, item.Tags); err != nil {
			return err
		}
	}

	fmt.Println()
	printReview(commonBefore, common, itemsBefore, items)

	fmt.Println()
	ok, err := session.Confirm("Continue?")
	if err != nil {
		return err
	}
	if !ok {
		cError.Println("Cancelled!")
		return nil
	}

	fmt.Println()
	copied, err := tagg.CopyFiles(pf, common, items)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, item := range copied {
		fmt.Printf("Writing tags for %s ... ", item.Path)
		if err := tagg.WriteTrack(common, item); err != nil {
			cError.Println("FAILED")
			return err
		}
		cSuccess.Println("OK")
	}

	fmt.Println()
	cSuccess.Println("Done!")
	return nil
}

func printField(label, value string) {
	cLabel.Printf("%s:", label)
	fmt.Printf(" %s\n", value)
}

func printReview(commonBefore, common map[string]string, itemsBefore []map[string]string, items []release.Item) {
	t := table.NewStringWriter()
	for _, field := range release.CommonFields {
		fmt.Fprintf(t, "%s\t%s\n", field, fmtDiff(commonBefore[field], common[field]))
	}
	for i, item := range items {
		for _, field := range release.ItemFields {
			fmt.Fprintf(t, "track %d %s\t%s\n", i+1, field, fmtDiff(itemsBefore[i][field], item.Tags[field]))
		}
	}
	for _, row := range strings.Split(strings.TrimRight(t.String(), "\n"), "\n") {
		fmt.Println(row)
	}
}

func fmtDiff(before, after string) string {
	if d := dmp.DiffPrettyText(dmp.DiffMain(before, after, false)); d != "" {
		return d
	}
	return "[empty]"
}
