package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/clearance/advanced"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Check measured points against the clearance envelope. A single query is
// given as arguments:
//
//	clearance 1950 3560 100 0
//
// With --batch, queries are read from stdin, one "offset height cant radius"
// per line. Fields may be separated by spaces or commas. Blank lines and
// anything after a # are ignored. Put -- before the query if it has negative
// numbers, so they aren't taken as flags.

type options struct {
	profilePath string
	batch       bool
	pngPath     string
	scale       float64
	imgcat      bool
	verbose     bool
	debug       bool
	plain       bool
	query       []string
}

func newApp(opts *options) *kingpin.Application {
	app := kingpin.New("clearance", "Check measured points against the railway building clearance envelope.")
	app.Flag("profile", "TOML track profile.").Short('p').ExistingFileVar(&opts.profilePath)
	app.Flag("batch", "Read one query per line from stdin.").Short('b').BoolVar(&opts.batch)
	app.Flag("png", "Draw the envelope and the measurement to this PNG file.").StringVar(&opts.pngPath)
	app.Flag("scale", "PNG pixels per millimetre.").Default("0.1").Float64Var(&opts.scale)
	app.Flag("imgcat", "Show the PNG in the terminal (iTerm only).").BoolVar(&opts.imgcat)
	app.Flag("verbose", "Print every field of each result.").Short('v').BoolVar(&opts.verbose)
	app.Flag("debug", "Log at debug level.").BoolVar(&opts.debug)
	app.Flag("plain", "Disable colours.").BoolVar(&opts.plain)
	app.Arg("query", "Offset (mm), height (mm), cant (mm) and curve radius (m, 0 for tangent track).").StringsVar(&opts.query)
	return app
}

func main() {
	var opts options
	kingpin.MustParse(newApp(&opts).Parse(os.Args[1:]))
	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

func run(opts options, in io.Reader, out io.Writer) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: opts.plain})
	if opts.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	profile := advanced.DefaultProfile()
	if opts.profilePath != "" {
		var err error
		profile, err = advanced.LoadProfileFile(opts.profilePath)
		if err != nil {
			return err
		}
		log.WithField("profile", profile.Name).Debug("loaded profile")
	}
	evaluator, err := advanced.NewEvaluator(profile)
	if err != nil {
		return err
	}
	evaluator.Log = log

	var queries []advanced.MeasurementPoint
	if opts.batch {
		if len(opts.query) > 0 {
			return errors.New("--batch reads queries from stdin, not arguments")
		}
		queries, err = readQueries(in)
		if err != nil {
			return err
		}
	} else {
		query, err := parseQuery(strings.Join(opts.query, " "))
		if err != nil {
			return err
		}
		queries = append(queries, query)
	}
	if opts.pngPath != "" && len(queries) != 1 {
		return errors.Errorf("--png draws a single query, got %d", len(queries))
	}

	au := aurora.NewAurora(!opts.plain)
	failed := 0
	for _, query := range queries {
		result, err := evaluator.Evaluate(query)
		if err != nil {
			if !opts.batch {
				return err
			}
			failed++
			fmt.Fprintln(out, formatError(au, query, err))
			continue
		}
		fmt.Fprintln(out, formatResult(au, query, result))
		if opts.verbose {
			fmt.Fprintf(out, "%# v\n", pretty.Formatter(result))
		}

		if opts.pngPath != "" {
			if err := evaluator.DrawPNG(opts.pngPath, opts.scale, query, result); err != nil {
				return errors.Wrap(err, "drawing")
			}
			if opts.imgcat {
				advanced.CatPNG(opts.pngPath)
			}
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d queries failed", failed, len(queries))
	}
	return nil
}

func readQueries(in io.Reader) ([]advanced.MeasurementPoint, error) {
	var queries []advanced.MeasurementPoint
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		// Strip comments, then skip anything left blank
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		query, err := parseQuery(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		queries = append(queries, query)
	}
	return queries, scanner.Err()
}

var queryFields = []string{"offset", "height", "cant", "radius"}

func parseQuery(line string) (advanced.MeasurementPoint, error) {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(parts) != len(queryFields) {
		return advanced.MeasurementPoint{}, errors.Errorf("want offset, height, cant and radius, got %q", line)
	}

	var values [4]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return advanced.MeasurementPoint{}, errors.Wrapf(err, "invalid %s", queryFields[i])
		}
		values[i] = value
	}
	return advanced.MeasurementPoint{
		OffsetMM: values[0],
		HeightMM: values[1],
		Track:    advanced.TrackParameters{CantMM: values[2], CurveRadiusM: values[3]},
	}, nil
}

func formatQuery(m advanced.MeasurementPoint) string {
	return fmt.Sprintf("offset %g height %g cant %g radius %g", m.OffsetMM, m.HeightMM, m.Track.CantMM, m.Track.CurveRadiusM)
}

func formatResult(au aurora.Aurora, m advanced.MeasurementPoint, r advanced.Result) string {
	verdict := au.Green(r.Verdict())
	if r.IsInterference {
		verdict = au.Red(r.Verdict())
	}
	return fmt.Sprintf("%s %s  %s  required %.1f AG2 %.1f",
		verdict.String(),
		au.Bold(fmt.Sprintf("%d mm", r.MarginMM)).String(),
		formatQuery(m),
		r.RequiredClearanceMM,
		r.AG2DistanceMM,
	)
}

func formatError(au aurora.Aurora, m advanced.MeasurementPoint, err error) string {
	return fmt.Sprintf("%s  %s  %v", au.Yellow("error").String(), formatQuery(m), err)
}
