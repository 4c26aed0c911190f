package display

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"github.com/byte4ever/ftssl/config"
	"github.com/byte4ever/ftssl/digest"
	"github.com/byte4ever/ftssl/hexenc"
	"github.com/byte4ever/ftssl/source"
)

var multihashCodes = map[digest.Algorithm]uint64{
	digest.MD5:    multihash.MD5,
	digest.SHA256: multihash.SHA2_256,
}

// record is one line of JSON output.
type record struct {
	Algorithm digest.Algorithm `json:"algorithm"`
	Kind      string           `json:"kind"`
	Name      string           `json:"name,omitempty"`
	Digest    string           `json:"digest,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Printer writes results for one run. Digest lines go to the output
// writer and unreadable inputs are reported on the error writer.
type Printer struct {
	algo    digest.Algorithm
	echo    bool
	json    bool
	mhCode  uint64
	hasMH   bool
	encoder *multibase.Encoder
	layout  layout
	out     io.Writer
	errOut  io.Writer
}

// New returns a Printer configured by cfg.
func New(
	cfg config.Config,
	out io.Writer,
	errOut io.Writer,
) (*Printer, error) {
	const errCtx = "creating printer"

	lay, err := compileLayout(
		cfg.Template,
		selectLayout(cfg.Quiet, cfg.Reverse, cfg.Echo),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	pr := &Printer{
		algo:   cfg.Algorithm,
		echo:   cfg.Echo,
		json:   cfg.JSON,
		layout: lay,
		out:    out,
		errOut: errOut,
	}

	if cfg.Encoding != "" {
		enc, err := multibase.EncoderByName(cfg.Encoding)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		pr.encoder = &enc
	}

	if cfg.Multihash {
		code, ok := multihashCodes[cfg.Algorithm]
		if !ok {
			return nil, fmt.Errorf(
				"%s: %w: %s",
				errCtx, config.ErrMultihashUnsupported, cfg.Algorithm,
			)
		}

		pr.mhCode = code
		pr.hasMH = true
	}

	return pr, nil
}

// Encode renders a raw digest the way Print does.
func (p *Printer) Encode(sum []byte) (string, error) {
	const errCtx = "encoding digest"

	if p.hasMH {
		mh, err := multihash.Encode(sum, p.mhCode)
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		sum = mh
	}

	if p.encoder != nil {
		return p.encoder.Encode(sum), nil
	}

	hx, err := hexenc.Encode(sum)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hx, nil
}

// Print writes one result.
func (p *Printer) Print(res digest.Result) error {
	const errCtx = "printing result"

	var err error

	switch {
	case p.json:
		err = p.printJSON(res)
	case res.Err != nil:
		err = p.printError(res)
	default:
		err = p.printText(res)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// PrintAll writes results in order, stopping at the first write error.
func (p *Printer) PrintAll(results []digest.Result) error {
	for _, res := range results {
		if err := p.Print(res); err != nil {
			return err
		}
	}

	return nil
}

// Verdict writes the outcome of checking path against its sidecar.
func (p *Printer) Verdict(path string, ok bool) error {
	const errCtx = "printing verdict"

	status := "FAILED"
	if ok {
		status = "OK"
	}

	if _, err := fmt.Fprintf(p.out, "%s: %s\n", path, status); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Failure reports that name could not be processed, in the
// "ft_ssl: <algo>: <name>: <Reason>" form.
func (p *Printer) Failure(name string, cause error) error {
	const errCtx = "printing failure"

	if _, err := fmt.Fprintf(
		p.errOut,
		"ft_ssl: %s: %s: %s\n",
		p.algo, name, source.Reason(cause),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func (p *Printer) printText(res digest.Result) error {
	hx, err := p.Encode(res.Digest)
	if err != nil {
		return err
	}

	tpl, ok := p.layout[res.Input.Kind]
	if !ok {
		return fmt.Errorf("no layout for %s input", res.Input.Kind)
	}

	line := tpl.ExecuteString(map[string]interface{}{
		"algorithm": p.algo.String(),
		"label":     p.algo.Label(),
		"kind":      res.Input.Kind.String(),
		"name":      displayName(res),
		"digest":    hx,
	})

	_, err = io.WriteString(p.out, line+"\n")

	return err
}

func (p *Printer) printError(res digest.Result) error {
	name := res.Input.Name
	if res.Input.Kind == source.Stdin {
		name = "stdin"
	}

	return p.Failure(name, res.Err)
}

func (p *Printer) printJSON(res digest.Result) error {
	rec := record{
		Algorithm: p.algo,
		Kind:      res.Input.Kind.String(),
		Name:      res.Input.Name,
	}

	if res.Input.Kind == source.Stdin && p.echo {
		rec.Name = string(res.Content)
	}

	if res.Err != nil {
		rec.Error = source.Reason(res.Err)
	} else {
		hx, err := p.Encode(res.Digest)
		if err != nil {
			return err
		}

		rec.Digest = hx
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	_, err = p.out.Write(append(raw, '\n'))

	return err
}

// displayName is the text shown for an input: the stdin content, the
// string itself or the path, without one trailing newline.
func displayName(res digest.Result) string {
	name := res.Input.Name
	if res.Input.Kind == source.Stdin {
		name = string(res.Content)
	}

	return strings.TrimSuffix(name, "\n")
}
