package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/fatih/color"
)

// Write reads document text from the user and saves it encrypted to name.
func (a *App) Write(ctx context.Context, name string) error {
	if !a.isLoggedIn() {
		return common.ErrUnauthenticated
	}

	text, err := GetMultiline(a.reader, "Enter the document text", a.out)
	if err != nil {
		return err
	}

	path := a.documentPath(name)
	if err := a.documentService.SaveFile(ctx, a.connID, path, []byte(text)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s.\n", path)
	return nil
}

// Read prints the content of the document file name.
func (a *App) Read(ctx context.Context, name string) error {
	doc, err := a.documentService.OpenFile(ctx, a.connID, a.documentPath(name))
	if err != nil {
		return err
	}

	if doc.Kind == cryptox.DocumentForeign {
		fmt.Fprintln(a.out, color.YellowString("(this file is not encrypted)"))
	}
	fmt.Fprintln(a.out, string(doc.Content))
	return nil
}
