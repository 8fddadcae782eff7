package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// profileSchema constrains profile files. A profile carries custom
// units, pre-declared variables, preferred display units, and the
// formatting policy.
const profileSchema = `
#Unit: {
	symbol:    string & !=""
	name:      string & !=""
	dimension: string & !=""
	factor:    number & !=0
	offset:    number | *0
}

#Variable: {
	value:       number
	unit:        string | *""
	description: string | *""
}

#Precision: {
	significant_digits: int & >0 | *6
	decimal_places:     int & >=0 | *4
	format:             "auto" | "fixed" | "scientific" | "engineering" | *"auto"
}

#Profile: {
	units?: [...#Unit]
	variables?: {[string]: #Variable}
	preferences?: [...string]
	precision?: #Precision
}
`

// Profile is a decoded profile file.
type Profile struct {
	Units       []ProfileUnit              `json:"units"`
	Variables   map[string]ProfileVariable `json:"variables"`
	Preferences []string                   `json:"preferences"`
	Precision   *ProfilePrecision          `json:"precision"`
}

// ProfileUnit is a custom unit declaration.
type ProfileUnit struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Dimension string  `json:"dimension"`
	Factor    float64 `json:"factor"`
	Offset    float64 `json:"offset"`
}

// ProfileVariable is a pre-declared variable.
type ProfileVariable struct {
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// ProfilePrecision is the formatting policy fragment.
type ProfilePrecision struct {
	SignificantDigits int    `json:"significant_digits"`
	DecimalPlaces     int    `json:"decimal_places"`
	Format            string `json:"format"`
}

// LoadError represents an error that occurred during profile loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Loader error codes.
const (
	ErrCodeNotFound     = "PROFILE_NOT_FOUND"
	ErrCodeParseFailed  = "PROFILE_PARSE_FAILED"
	ErrCodeSchemaFailed = "PROFILE_SCHEMA_VIOLATION"
	ErrCodeDecodeFailed = "PROFILE_DECODE_FAILED"
)

// LoadProfile loads and validates a CUE profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading profile: %v", err)}
	}

	ctx := cuecontext.New()

	schemaFile := ctx.CompileString(profileSchema, cue.Filename("profile-schema.cue"))
	if err := schemaFile.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("compiling schema: %v", err)}
	}
	schema := schemaFile.LookupPath(cue.ParsePath("#Profile"))

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeParseFailed, err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, cueLoadError(ErrCodeSchemaFailed, err)
	}

	var profile Profile
	if err := unified.Decode(&profile); err != nil {
		return nil, cueLoadError(ErrCodeDecodeFailed, err)
	}
	return &profile, nil
}

// cueLoadError converts a CUE error to a LoadError with position info.
func cueLoadError(code string, err error) *LoadError {
	le := &LoadError{Code: code, Message: err.Error()}
	if positions := errors.Positions(errors.Promote(err, "")); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
