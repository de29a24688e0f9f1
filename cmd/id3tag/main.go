package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	id3 "github.com/Jeansidharta/id3v2-tagging-tool"
)

var stdoutIsTerminal = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func colored(msg, style string) string {
	if stdoutIsTerminal {
		return ansi.Color(msg, style)
	}
	return msg
}

func fatalf(format string, args ...interface{}) {
	fmt.Println(colored(fmt.Sprintf(format, args...), "red"))
	os.Exit(1)
}

func warnf(format string, args ...interface{}) {
	fmt.Println(colored(fmt.Sprintf(format, args...), "yellow"))
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// checkFrameID rejects malformed frame IDs before touching the file.
// Unknown-but-valid IDs only get a warning; the operation proceeds.
func checkFrameID(id string) {
	if !id3.IsValidFrameID(id) {
		fatalf("Error: Provided frame id %q is not valid. It must be a four-character word composed exclusively of numbers or uppercase letters", id)
	}
	if !id3.IsKnownFrameID(id) {
		warnf("Warning: Provided frame id %q is not a known id. The operation will still be executed.", id)
	}
}

// checkFrameIndex validates the user-facing 1-based frame index.
func checkFrameIndex(index int) {
	if index < 1 {
		fatalf("Error: The frame index starts at one, not zero.")
	}
}

func reportNotFound(err error, id string, index int, verb string) {
	var notFound id3.FrameNotFoundError
	if !stderrors.As(err, &notFound) {
		fatalf("Error: %s", err)
	}
	switch notFound.Found {
	case 0:
		fatalf("Error: No frame found with id %q", id)
	case 1:
		fatalf("Error: There is only 1 frame with id %q. You tried to %s the %d%s", id, verb, index, ordinal(index))
	default:
		fatalf("Error: There are only %d frames with id %q. You tried to %s the %d%s", notFound.Found, id, verb, index, ordinal(index))
	}
}

func openFile(path string, opts id3.Options) *id3.File {
	f, err := id3.Open(path, opts)
	if err != nil {
		fatalf("Error: %s", err)
	}
	return f
}

func saveFile(f *id3.File) {
	if err := f.Save(); err != nil {
		fatalf("Error: %s", err)
	}
}

func printSummary(f *id3.File, path string, humanReadable bool) {
	stat, err := os.Stat(path)
	if err != nil {
		fatalf("Error: %s", err)
	}
	audioSize := stat.Size() - f.AudioOffset()

	size := func(n int64) string {
		if humanReadable {
			return humanize.Bytes(uint64(n))
		}
		return fmt.Sprintf("%d B", n)
	}
	fmt.Printf("version: %s\n", f.Header.Version)
	fmt.Printf("tag size: %s (%d frames)\n", size(int64(f.TagSize())), len(f.Frames))
	fmt.Printf("audio size: %s\n", size(audioSize))
}

func main() {
	app := kingpin.New("id3tag", "Read, add, edit and delete ID3v2 frames in MP3 files.")
	app.HelpFlag.Short('h')

	humanReadable := app.Flag("human-readable", "Try to make all printed values as human readable as possible.").Short('r').Bool()
	configPath := app.Flag("config", "Path to the configuration file.").String()
	logLevel := app.Flag("log-level", "Log level: trace, debug, info, warn or error.").String()

	readCmd := app.Command("read", "Print every frame of the file's tag.")
	readFile := readCmd.Arg("file", "The MP3 file to be used.").Required().String()
	readFlags := readCmd.Flag("frame-flags", "Also print the frames' flags.").Bool()
	readVerbose := readCmd.Flag("verbose", "Also print a tag summary.").Short('v').Bool()

	writeCmd := app.Command("write", "Append a new frame to the tag.")
	writeFile := writeCmd.Arg("file", "The MP3 file to be used.").Required().String()
	writeID := writeCmd.Arg("frame-id", "The ID of the frame.").Required().String()
	writeData := writeCmd.Arg("data", "The data of the frame.").Required().String()

	editCmd := app.Command("edit", "Replace the data of an existing frame.")
	editFile := editCmd.Arg("file", "The MP3 file to be used.").Required().String()
	editID := editCmd.Arg("frame-id", "The ID of the frame to edit.").Required().String()
	editData := editCmd.Arg("data", "The data that replaces the frame's data.").Required().String()
	editIndex := editCmd.Flag("frame-index", "Which frame to edit when several share the ID (starts at 1).").Short('i').Default("1").Int()

	deleteCmd := app.Command("delete", "Remove a frame from the tag.")
	deleteFile := deleteCmd.Arg("file", "The MP3 file to be used.").Required().String()
	deleteID := deleteCmd.Arg("frame-id", "The ID of the frame to delete.").Required().String()
	deleteIndex := deleteCmd.Flag("frame-index", "Which frame to delete when several share the ID (starts at 1).").Short('i').Default("1").Int()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfgPath := *configPath
	explicit := cfgPath != ""
	if !explicit {
		cfgPath = defaultConfigPath()
	}
	cfg, err := loadConfig(cfgPath, explicit)
	if err != nil {
		fatalf("Error: %s", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		fatalf("Error: %s", err)
	}

	switch command {
	case readCmd.FullCommand():
		f := openFile(*readFile, opts)
		defer f.Close()
		if *readVerbose {
			printSummary(f, *readFile, *humanReadable)
		}
		fmt.Println(f.Render(*readFlags, *humanReadable))

	case writeCmd.FullCommand():
		checkFrameID(*writeID)
		f := openFile(*writeFile, opts)
		defer f.Close()
		f.Add(*writeID, *writeData)
		saveFile(f)

	case editCmd.FullCommand():
		checkFrameID(*editID)
		checkFrameIndex(*editIndex)
		f := openFile(*editFile, opts)
		defer f.Close()
		if err := f.Edit(*editID, *editIndex-1, *editData); err != nil {
			reportNotFound(err, *editID, *editIndex, "edit")
		}
		saveFile(f)

	case deleteCmd.FullCommand():
		checkFrameID(*deleteID)
		checkFrameIndex(*deleteIndex)
		fmt.Printf("Removing the %d%s frame of ID %q\n", *deleteIndex, ordinal(*deleteIndex), *deleteID)
		f := openFile(*deleteFile, opts)
		defer f.Close()
		if err := f.Remove(*deleteID, *deleteIndex-1); err != nil {
			reportNotFound(err, *deleteID, *deleteIndex, "remove")
		}
		saveFile(f)
	}
}

func buildOptions(cfg config) (id3.Options, error) {
	sizeField, err := cfg.sizeField()
	if err != nil {
		return id3.Options{}, err
	}
	writeText, err := cfg.writeText()
	if err != nil {
		return id3.Options{}, err
	}

	logger := id3.NewStderrLogger()
	if cfg.LogLevel != "" || cfg.Color != nil {
		level := id3.LevelInfo
		if cfg.LogLevel != "" {
			level = id3.ParseLevel(cfg.LogLevel)
		} else if s, ok := os.LookupEnv("ID3TAG_LOG"); ok {
			level = id3.ParseLevel(s)
		}
		color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		if cfg.Color != nil {
			color = *cfg.Color
		}
		logger = id3.NewLogger(os.Stderr, level, color)
	}

	return id3.Options{
		Logger:    logger,
		SizeField: sizeField,
		WriteText: writeText,
	}, nil
}
