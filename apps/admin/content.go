package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core/content"
)

func (cli *commandLine) stats(table bool) error {
	stats, err := cli.contentSvc.Stats(context.Background())
	if err != nil {
		return err
	}
	if !table {
		return cli.printJSON(stats)
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = io.WriteString(w, "SUBJECT\tMODULES\tWITH CONTENT\tVIDEOS\tSIZE\tLAST UPDATED\n")
	for _, s := range stats.Subjects {
		lastUpdated := "-"
		if s.LastUpdated != nil {
			lastUpdated = s.LastUpdated.Local().Format("2006-01-02 15:04")
		}
		cli.fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n", s.Title, s.TotalModules, s.ModulesWithContent, s.TotalVideos, humanize.IBytes(uint64(s.TotalSize)), lastUpdated)
	}
	sum := stats.Summary
	cli.fprintf(w, "TOTAL (%d)\t%d\t%d\t%d\t%s\t\n", sum.TotalSubjects, sum.TotalModules, sum.TotalModulesWithContent, sum.TotalVideos, humanize.IBytes(uint64(sum.TotalSize)))
	return w.Flush()
}

// importVideos uploads local files to the module `key`, applying the same rules as the API.
func (cli *commandLine) importVideos(key content.ModuleKey, paths []string) error {
	nu := content.NewUpload{ModuleKey: key}
	for _, p := range paths {
		f, err := localFile(p)
		if err != nil {
			return err
		}
		nu.Files = append(nu.Files, f)
	}
	if err := nu.Validate(cli.validate, cli.conf.Storage); err != nil {
		return err
	}

	videos, err := cli.contentSvc.Upload(context.Background(), nu)
	if err != nil {
		return err
	}
	for _, v := range videos {
		cli.printf("%s -> %s/%s\n", v.OriginalName, nu.ModuleKey, v.FileName)
	}
	cli.printf("%d videos uploaded successfully\n", len(videos))
	return nil
}

func localFile(path string) (content.UploadFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return content.UploadFile{}, errors.Wrap(err, "reading video")
	}
	if !fi.Mode().IsRegular() {
		return content.UploadFile{}, errors.Errorf("%s is not a file", path)
	}
	return content.UploadFile{
		Name: fi.Name(),
		Type: mimeType(fi.Name()),
		Size: fi.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// mimeType guesses the type of a file from its extension, as browsers do when uploading.
func mimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".mp4" {
		return "video/mp4"
	}
	if typ := mime.TypeByExtension(ext); typ != "" {
		return typ
	}
	return "application/octet-stream"
}

func (cli *commandLine) prune() error {
	report, err := cli.contentSvc.Prune(context.Background())
	if err != nil {
		return err
	}
	if report.IsEmpty() && len(report.Skipped) == 0 {
		cli.printf("nothing to prune\n")
		return nil
	}
	return cli.printJSON(report)
}

func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (cli *commandLine) fprintf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
