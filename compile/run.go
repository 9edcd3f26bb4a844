package compile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"flexcss/config"
	"flexcss/state"
)

// Run is the compile command action: SOURCE... [DESTINATION].
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("no input source has been specified")
	}
	sources := args
	var (
		dst string
		err error
	)
	if len(args) > 1 {
		sources, dst = args[:len(args)-1], args[len(args)-1]
	} else if dst, err = os.Getwd(); err != nil {
		return fmt.Errorf("unable to get working directory: %w", err)
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	opts, err := NewOptions(&env.Cfg.Compiler)
	if err != nil {
		return err
	}
	if to := cmd.String("to"); len(to) > 0 {
		if format, err := config.ParseOutputFormat(to); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", opts.Format))
		} else {
			opts.Format = format
		}
	}
	env.Overwrite = cmd.Bool("overwrite")
	opts.Overwrite = env.Overwrite

	inputs, err := Inputs(sources)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.Strings("sources", sources), zap.String("destination", dst), zap.Stringer("format", opts.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, New(opts, env.Rpt, log), inputs, dst, log)
}

func process(ctx context.Context, c *Compiler, inputs []string, dst string, log *zap.Logger) error {
	failed := 0
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := c.Compile(ctx, in)
		if err != nil {
			log.Error("Unable to compile", zap.String("source", in), zap.Error(err))
			failed++
			continue
		}
		out, err := c.Write(m, dst)
		if err != nil {
			log.Error("Unable to write output", zap.String("source", in), zap.Error(err))
			failed++
			continue
		}
		log.Info("Compiled", zap.String("source", in), zap.String("output", out))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

func isInput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSS, ExtMXML:
		return true
	}
	return false
}

// Inputs expands sources into list of files to compile. Directories are
// walked recursively (links are not followed) and their style sheets and
// MXML documents are taken in natural order. Files named explicitly are used
// as is.
func Inputs(sources []string) ([]string, error) {
	var inputs []string
	for _, src := range sources {
		src, err := filepath.Abs(src)
		if err != nil {
			return nil, err
		}
		fi, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("input source was not found (%s): %w", src, err)
		}
		if !fi.IsDir() {
			inputs = append(inputs, src)
			continue
		}
		var found []string
		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && isInput(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("unable to process directory (%s): %w", src, err)
		}
		sort.Sort(natural.StringSlice(found))
		inputs = append(inputs, found...)
	}
	return inputs, nil
}
