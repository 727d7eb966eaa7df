// toon - TOON codec CLI tool
//
// Usage:
//
//	toon encode [--json] [--indent=S] [--delimiter=C] [file...]
//	toon decode [--lenient] [file]
//	toon stream encode [--gzip] <sid> [file]
//	toon stream decode [file]
//	toon version
//
// Encode accepts TOON text by default, or JSON with --json. Files
// passed to encode are processed concurrently; each file's output is
// printed after a "=== <file> ===" line. If no file is given,
// commands read from stdin.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/elminson/toon/toon"
	"github.com/elminson/toon/transport"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	switch os.Args[1] {
	case "encode":
		cmdEncode(os.Args[2:], logger)
	case "decode":
		cmdDecode(os.Args[2:], logger)
	case "stream":
		cmdStream(os.Args[2:], logger)
	case "version":
		fmt.Printf("toon %s\n", version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: toon <encode|decode|stream|version> [options] [file...]")
}

func fatal(logger *zap.Logger, format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

func cmdEncode(args []string, logger *zap.Logger) {
	var opts []toon.Option
	fromJSON := false
	var files []string

	for _, arg := range args {
		switch {
		case arg == "--json":
			fromJSON = true
		case strings.HasPrefix(arg, "--indent="):
			opts = append(opts, toon.WithIndent(strings.TrimPrefix(arg, "--indent=")))
		case strings.HasPrefix(arg, "--delimiter="):
			d := strings.TrimPrefix(arg, "--delimiter=")
			if len(d) == 1 {
				opts = append(opts, toon.WithDelimiter(d[0]))
			}
		default:
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		encodeOne(os.Stdin, os.Stdout, fromJSON, opts, logger)
		return
	}

	var g errgroup.Group
	outputs := make([][]byte, len(files))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			var buf strings.Builder
			encodeOne(strings.NewReader(string(data)), &buf, fromJSON, opts, logger)
			outputs[i] = []byte(buf.String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatal(logger, "encode: %v", err)
	}
	for i, path := range files {
		fmt.Printf("=== %s ===\n%s", path, outputs[i])
	}
}

func encodeOne(r io.Reader, w io.Writer, fromJSON bool, opts []toon.Option, logger *zap.Logger) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal(logger, "read input: %v", err)
	}

	var v toon.Value
	if fromJSON {
		v, err = toon.FromJSON(data)
		if err != nil {
			fatal(logger, "parse JSON: %v", err)
		}
	} else {
		v, err = toon.Decode(string(data))
		if err != nil {
			fatal(logger, "parse TOON: %v", err)
		}
	}
	fmt.Fprintln(w, toon.Encode(v, opts...))
}

func cmdDecode(args []string, logger *zap.Logger) {
	lenient := false
	var fileArg string
	for _, arg := range args {
		switch {
		case arg == "--lenient":
			lenient = true
		default:
			fileArg = arg
		}
	}

	var input io.Reader = os.Stdin
	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			fatal(logger, "open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		fatal(logger, "read input: %v", err)
	}

	if lenient {
		res := toon.DecodeLenient(string(data))
		for _, d := range res.Diagnostics {
			logger.Warn("decode diagnostic", zap.String("detail", d.String()))
		}
		out, err := toon.ToJSON(res.Value)
		if err != nil {
			fatal(logger, "render JSON: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	v, err := toon.Decode(string(data))
	if err != nil {
		fatal(logger, "decode: %v", err)
	}
	out, err := toon.ToJSON(v)
	if err != nil {
		fatal(logger, "render JSON: %v", err)
	}
	fmt.Println(string(out))
}

func cmdStream(args []string, logger *zap.Logger) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "toon stream: missing subcommand (encode, decode)")
		os.Exit(1)
	}

	sessionID := transport.NewSessionID()
	logger = logger.With(zap.String("session", sessionID))

	switch args[0] {
	case "encode":
		cmdStreamEncode(args[1:], logger)
	case "decode":
		cmdStreamDecode(args[1:], logger)
	default:
		fmt.Fprintf(os.Stderr, "toon stream: unknown subcommand: %s\n", args[0])
		os.Exit(1)
	}
}

func cmdStreamEncode(args []string, logger *zap.Logger) {
	useGzip := false
	var sid uint64 = 1
	var fileArg string
	for _, arg := range args {
		switch {
		case arg == "--gzip":
			useGzip = true
		default:
			if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
				sid = n
			} else {
				fileArg = arg
			}
		}
	}

	var input io.Reader = os.Stdin
	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			fatal(logger, "open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		fatal(logger, "read input: %v", err)
	}
	v, err := toon.Decode(string(data))
	if err != nil {
		fatal(logger, "decode: %v", err)
	}

	var wopts []transport.WriterOption
	wopts = append(wopts, transport.WithCRC())
	if useGzip {
		wopts = append(wopts, transport.WithGzip())
	}
	w := transport.NewWriter(os.Stdout, wopts...)
	if err := w.WriteFinal(sid, 1, transport.KindDoc, []byte(toon.Encode(v))); err != nil {
		fatal(logger, "write frame: %v", err)
	}
	logger.Info("stream encode complete", zap.Uint64("sid", sid))
}

func cmdStreamDecode(args []string, logger *zap.Logger) {
	var fileArg string
	if len(args) > 0 {
		fileArg = args[0]
	}
	var input io.Reader = os.Stdin
	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			fatal(logger, "open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	r := transport.NewReader(input)
	cursor := transport.NewCursor()
	for {
		frame, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fatal(logger, "read frame: %v", err)
		}
		if err := cursor.Observe(frame); err != nil {
			logger.Warn("sequence error", zap.Error(err))
		}
		switch frame.Kind {
		case transport.KindDoc:
			v, err := toon.Decode(string(frame.Payload))
			if err != nil {
				fatal(logger, "decode frame payload: %v", err)
			}
			cursor.SetStateHash(frame.SID, transport.StateHash(v))
			fmt.Println(toon.Encode(v))
		case transport.KindUI, transport.KindErr:
			fmt.Fprintf(os.Stderr, "[event sid=%d] %s\n", frame.SID, frame.Payload)
		}
	}
}
