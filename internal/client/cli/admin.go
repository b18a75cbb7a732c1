package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/readdaily/internal/filex"
	"github.com/dmitrijs2005/readdaily/internal/netx"
	"github.com/dustin/go-humanize"
)

const exportDir = "exports"

// Export requests a history export and downloads it into ./exports.
func (a *App) Export(ctx context.Context) error {
	exp, err := a.service.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Export ready, link expires %s:\n%s\n", relTime(exp.ExpiresAt), exp.URL)

	dir, err := filex.EnsureSubDir(exportDir)
	if err != nil {
		return err
	}
	path, err := filex.PathForKey(dir, exp.Key)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := netx.DownloadPresignedURL(ctx, exp.URL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s to %s\n", humanize.Bytes(uint64(n)), path)
	return nil
}

// Import loads a JSON article catalog from the given path.
func (a *App) Import(ctx context.Context, args []string) error {
	path, err := a.readArg(args, "Enter catalog file path")
	if err != nil {
		return err
	}
	return a.importFile(ctx, path)
}

func (a *App) importFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := a.service.ImportCatalog(ctx, f)
	if err != nil {
		if n > 0 {
			fmt.Fprintf(a.out, "Imported %s before the failure\n", plural(n, "article"))
		}
		return err
	}
	fmt.Fprintf(a.out, "Imported %s from %s\n", plural(n, "article"), path)
	return nil
}

// Automation runs one content automation pass on the server.
func (a *App) Automation(ctx context.Context) error {
	st, err := a.service.RunAutomation(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Automation finished: %d fetched, %d skipped, %d created, %d failed\n",
		st.Fetched, st.Skipped, st.Created, st.Failed)
	return nil
}
