package fpl

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

//go:embed schemas/FlightPlanv1.xsd
var schemaFS embed.FS

// SchemaValidator checks an encoded FPL document against the Garmin XSD.
//
// The validator is the single source of truth on schema conformance: once a
// document is past syntactic construction the encoder never guesses at
// validity itself. Modelling the oracle as an interface lets tests swap in
// a stub without an xmllint binary on the machine.
type SchemaValidator interface {
	// Validate returns nil if the document conforms to the schema, and an
	// error wrapping domain.ErrSchemaValidation — carrying the oracle's
	// diagnostic text verbatim — if it does not.
	Validate(ctx context.Context, document []byte) error
}

// XMLLintValidator validates documents with the external xmllint binary.
//
// xmllint is used rather than an in-process XSD implementation because no
// maintained Go library implements enough of XML Schema to act as an
// oracle. The call is synchronous and expected to complete quickly; the
// document and the embedded schema are written to a scratch directory that
// is removed on every exit path.
type XMLLintValidator struct{}

// Validate writes the document and schema to a temporary directory and runs
// `xmllint --noout --schema`. Any non-zero exit is a validation failure.
func (XMLLintValidator) Validate(ctx context.Context, document []byte) error {
	dir, err := os.MkdirTemp("", "fpl-validate-")
	if err != nil {
		return fmt.Errorf("fpl.XMLLintValidator: create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	schema, err := schemaFS.ReadFile("schemas/FlightPlanv1.xsd")
	if err != nil {
		return fmt.Errorf("fpl.XMLLintValidator: read embedded schema: %w", err)
	}

	schemaPath := filepath.Join(dir, "FlightPlanv1.xsd")
	if err := os.WriteFile(schemaPath, schema, 0o600); err != nil {
		return fmt.Errorf("fpl.XMLLintValidator: write schema: %w", err)
	}

	documentPath := filepath.Join(dir, "fpl.xml")
	if err := os.WriteFile(documentPath, document, 0o600); err != nil {
		return fmt.Errorf("fpl.XMLLintValidator: write document: %w", err)
	}

	cmd := exec.CommandContext(ctx, "xmllint", "--noout", "--schema", schemaPath, documentPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSchemaValidation, out)
	}
	return nil
}
