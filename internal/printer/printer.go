// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/unitdesk/internal/core/styles"
)

// Printer writes human readable status output.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or a printer on stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(icon, msg string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", icon, msg)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Success writes a success line with an optional muted detail.
func (p *Printer) Success(title, detail string) {
	msg := styles.TextSuccessStyle.Render(title)
	if detail != "" {
		msg += " " + styles.TextMutedStyle.Render(detail)
	}
	p.line(styles.TextSuccessStyle.Render(styles.IconNotifySuccess), msg)
}

// Successf writes a formatted success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.TextSuccessStyle.Render(styles.IconNotifySuccess), fmt.Sprintf(format, args...))
}

// Infof writes a formatted info line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.TextPrimaryStyle.Render(styles.IconNotifyInfo), fmt.Sprintf(format, args...))
}

// Warnf writes a formatted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.TextWarningStyle.Render(styles.IconNotifyWarning), fmt.Sprintf(format, args...))
}

// Errorf writes a formatted error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.TextErrorStyle.Render(styles.IconNotifyError), fmt.Sprintf(format, args...))
}

// FieldErrors writes one indented line per field error in err and reports
// whether err held any. Other errors are not printed.
func (p *Printer) FieldErrors(err error) bool {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return false
	}
	for _, fe := range fieldErrs {
		p.Printf("  %s %s", styles.TextErrorStyle.Render(fe.Field+":"), fe.Err.Error())
	}
	return len(fieldErrs) > 0
}
