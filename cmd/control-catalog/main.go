package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/openshift/control-catalog/pkg/catalog"
	"github.com/openshift/control-catalog/pkg/inclusion"
	"github.com/openshift/control-catalog/pkg/loader"
)

const appName = "control-catalog"

type options struct {
	Document          string
	BaseDir           string
	Source            string
	GCS               loader.GCSConfig
	InclusionMode     string
	InclusionManifest string
	Output            string
	LogLevel          string
	Timeout           time.Duration

	Group       string
	Item        string
	GroupOfItem string

	mode catalog.InclusionMode
}

func (o *options) Validate() error {
	if o.Document == "" {
		return fmt.Errorf("--document must be set")
	}
	mode, err := catalog.ParseInclusionMode(o.InclusionMode)
	if err != nil {
		return fmt.Errorf("--inclusion-mode: %w", err)
	}
	o.mode = mode
	switch o.Source {
	case "auto", "file", "xdg":
	case "gcs":
		if err := o.GCS.Validate(); err != nil {
			return fmt.Errorf("--gcs-bucket: %w", err)
		}
	default:
		return fmt.Errorf("--source must be one of auto, file, xdg, gcs; got %q", o.Source)
	}
	if o.Output != "json" && o.Output != "yaml" {
		return fmt.Errorf("--output must be json or yaml; got %q", o.Output)
	}
	queries := 0
	for _, q := range []string{o.Group, o.Item, o.GroupOfItem} {
		if q != "" {
			queries++
		}
	}
	if queries > 1 {
		return fmt.Errorf("only one of --group, --item, --group-of-item may be set")
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	opt := &options{
		Document:      "DataModel/ControlInfoData.json",
		Source:        "auto",
		InclusionMode: catalog.PropertyBased.String(),
		Output:        "json",
		LogLevel:      "info",
		Timeout:       30 * time.Second,
	}
	pflag.StringVar(&opt.Document, "document", opt.Document, "Logical path of the catalog document, relative to the selected source.")
	pflag.StringVar(&opt.BaseDir, "base-dir", "", "Directory the file source resolves documents against. Defaults to the directory of this executable.")
	pflag.StringVar(&opt.Source, "source", opt.Source, "Where to read the document from: auto (installed XDG data, then executable directory), file, xdg or gcs.")
	pflag.StringVar(&opt.GCS.Bucket, "gcs-bucket", "", "GCS bucket holding catalog documents. Requires a binary built with -tags gcs.")
	pflag.StringVar(&opt.GCS.ObjectPrefix, "gcs-object-prefix", "", "Prefix prepended to the document path to form the GCS object name.")
	pflag.StringVar(&opt.InclusionMode, "inclusion-mode", opt.InclusionMode, "How IncludedInBuild is decided: property (document flag) or reflection (inclusion manifest).")
	pflag.StringVar(&opt.InclusionManifest, "inclusion-manifest", "", "YAML manifest listing the page types compiled into the build, used with --inclusion-mode=reflection.")
	pflag.StringVar(&opt.Output, "output", opt.Output, "Output format: json or yaml.")
	pflag.StringVar(&opt.LogLevel, "log-level", opt.LogLevel, "Log level: panic, fatal, error, warn, info, debug or trace.")
	pflag.DurationVar(&opt.Timeout, "timeout", opt.Timeout, "Maximum time allowed to load the document.")
	pflag.StringVar(&opt.Group, "group", "", "Print the group with this unique id.")
	pflag.StringVar(&opt.Item, "item", "", "Print the item with this unique id.")
	pflag.StringVar(&opt.GroupOfItem, "group-of-item", "", "Print the group containing the item with this unique id.")
	pflag.Parse()

	if err := opt.Validate(); err != nil {
		return err
	}
	level, err := logrus.ParseLevel(opt.LogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), opt.Timeout)
	defer cancel()

	source, err := newLoader(ctx, opt)
	if err != nil {
		return err
	}
	defer closeSource(source)
	registry, err := inclusion.LoadManifest(afero.NewOsFs(), opt.InclusionManifest)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"source": source.String(), "modules": len(registry.Modules())}).Debug("catalog sources configured")

	store := catalog.NewStore(source,
		catalog.WithInclusionChecker(registry),
		catalog.WithLogger(logrus.WithField("component", "catalog")),
	)

	result, err := query(ctx, store, opt)
	if err != nil {
		return err
	}
	return render(os.Stdout, opt.Output, result)
}

func newLoader(ctx context.Context, opt *options) (loader.Loader, error) {
	switch opt.Source {
	case "gcs":
		return loader.NewGCSLoader(ctx, opt.GCS)
	case "xdg":
		return loader.NewXDGLoader(appName), nil
	case "file":
		if opt.BaseDir != "" {
			return loader.NewFileLoader(afero.NewOsFs(), opt.BaseDir), nil
		}
		return loader.NewExecutableLoader()
	}
	if opt.BaseDir != "" {
		return loader.FirstOf(loader.NewXDGLoader(appName), loader.NewFileLoader(afero.NewOsFs(), opt.BaseDir)), nil
	}
	return loader.NewDefault(appName)
}

// closeSource releases sources that hold connections, such as the GCS client.
func closeSource(source loader.Loader) {
	closer, ok := source.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logrus.WithError(err).WithField("source", source.String()).Warn("failed to close catalog source")
	}
}

func query(ctx context.Context, svc catalog.ServiceInterface, opt *options) (interface{}, error) {
	var (
		found interface{}
		err   error
	)
	switch {
	case opt.Group != "":
		var g *catalog.Group
		g, err = svc.GetGroup(ctx, opt.Group, opt.Document, opt.mode)
		if g != nil {
			found = g
		}
	case opt.Item != "":
		var i *catalog.Item
		i, err = svc.GetItem(ctx, opt.Item, opt.Document, opt.mode)
		if i != nil {
			found = i
		}
	case opt.GroupOfItem != "":
		var g *catalog.Group
		g, err = svc.GetGroupFromItem(ctx, opt.GroupOfItem, opt.Document, opt.mode)
		if g != nil {
			found = g
		}
	default:
		return svc.ListGroups(ctx, opt.Document, opt.mode)
	}
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("no unique match in %s", opt.Document)
	}
	return found, nil
}

func render(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if format == "yaml" {
		if data, err = yaml.JSONToYAML(data); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if format == "json" {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
