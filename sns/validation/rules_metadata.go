package validation

import (
	"strings"
	"unicode"

	"github.com/oasisprotocol/sns-launch/sns/api"
)

const (
	// MaxTokenSymbolLength is the maximum length of the token symbol.
	MaxTokenSymbolLength = 10
	// MinTokenSymbolLength is the minimum length of the token symbol.
	MinTokenSymbolLength = 3
	// MaxTokenNameLength is the maximum length of the token name.
	MaxTokenNameLength = 255
	// MinTokenNameLength is the minimum length of the token name.
	MinTokenNameLength = 4

	// MaxLogoLength is the maximum length of an encoded logo, roughly 256 KiB.
	MaxLogoLength = 341334
	// LogoPrefix is the required prefix of an encoded logo.
	LogoPrefix = "data:image/png;base64,"

	MaxURLLength = 512
	MinURLLength = 10

	MaxNameLength        = 255
	MinNameLength        = 4
	MaxDescriptionLength = 2000
	MinDescriptionLength = 10
)

var (
	bannedTokenSymbols = []string{"ICP", "DFINITY"}
	bannedTokenNames   = []string{"internetcomputer", "internetcomputerprotocol"}
)

func validateTokenSymbol(p *api.InitPayload) error {
	if p.TokenSymbol == nil {
		return errMissing("token-symbol")
	}
	symbol := *p.TokenSymbol

	switch {
	case len(symbol) > MaxTokenSymbolLength:
		return &LengthError{
			Field:  "token-symbol",
			Length: len(symbol),
			Limit:  MaxTokenSymbolLength,
			format: "Error: %[1]s must be fewer than %[3]d characters, given character count: %[2]d",
		}
	case len(symbol) < MinTokenSymbolLength:
		return &LengthError{
			Field:  "token-symbol",
			Length: len(symbol),
			Limit:  MinTokenSymbolLength,
			format: "Error: %[1]s must be greater than %[3]d characters, given character count: %[2]d",
		}
	case symbol != strings.TrimSpace(symbol):
		return &FormatError{Field: "token-symbol", Value: symbol, format: "Token symbol must not have leading or trailing whitespaces"}
	}

	upper := strings.ToUpper(symbol)
	for _, banned := range bannedTokenSymbols {
		if upper == banned {
			return &FormatError{Field: "token-symbol", Value: symbol, format: "Banned token symbol, please chose another one."}
		}
	}
	return nil
}

func validateTokenName(p *api.InitPayload) error {
	if p.TokenName == nil {
		return errMissing("token-name")
	}
	name := *p.TokenName

	switch {
	case len(name) > MaxTokenNameLength:
		return &LengthError{
			Field:  "token-name",
			Length: len(name),
			Limit:  MaxTokenNameLength,
			format: "Error: %[1]s must be fewer than %[3]d characters, given character count: %[2]d",
		}
	case len(name) < MinTokenNameLength:
		return &LengthError{
			Field:  "token-name",
			Length: len(name),
			Limit:  MinTokenNameLength,
			format: "Error: %[1]s must be greater than %[3]d characters, given character count: %[2]d",
		}
	case name != strings.TrimSpace(name):
		return &FormatError{Field: "token-name", Value: name, format: "Token name must not have leading or trailing whitespaces"}
	}

	normalized := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(name))
	for _, banned := range bannedTokenNames {
		if normalized == banned {
			return &FormatError{Field: "token-name", Value: name, format: "Banned token name, please chose another one."}
		}
	}
	return nil
}

func validateTokenLogo(p *api.InitPayload) error {
	if p.TokenLogo == nil {
		return errMissing("token_logo")
	}
	logo := *p.TokenLogo

	if len(logo) > MaxLogoLength {
		return &LengthError{
			Field:  "token_logo",
			Length: len(logo),
			Limit:  MaxLogoLength,
			format: "Error: %[1]s must be less than %[3]d characters, roughly 256 Kb",
		}
	}
	if !strings.HasPrefix(logo, LogoPrefix) {
		return &FormatError{
			Field:  "token_logo",
			Value:  logo,
			format: "Error: %[1]s must be a base64 encoded PNG, but the provided string doesn't begin with `" + LogoPrefix + "`.",
		}
	}
	return nil
}

func validateLogo(p *api.InitPayload) error {
	if p.Logo == nil {
		return errMissing("logo")
	}
	logo := *p.Logo

	if len(logo) > MaxLogoLength {
		return &LengthError{
			Field:  "SnsMetadata.logo",
			Length: len(logo),
			Limit:  MaxLogoLength,
			format: "%[1]s must be less than %[3]d characters, roughly 256 Kb",
		}
	}
	if !strings.HasPrefix(logo, LogoPrefix) {
		return &FormatError{
			Field:  "SnsMetadata.logo",
			Value:  logo,
			format: "%[1]s must be a base64 encoded PNG, but the provided string does't begin with `" + LogoPrefix + "`.",
		}
	}
	return nil
}

func validateURL(p *api.InitPayload) error {
	if p.URL == nil {
		return errMissing("url")
	}
	const field = "SnsMetadata.url"
	url := *p.URL

	switch {
	case len(url) > MaxURLLength:
		return &LengthError{
			Field:  field,
			Length: len(url),
			Limit:  MaxURLLength,
			Value:  url,
			format: "%[1]s must be less than %[3]d characters long, but it is %[2]d characters long. (Field was set to `%[4]s`.)",
		}
	case len(url) < MinURLLength:
		return &LengthError{
			Field:  field,
			Length: len(url),
			Limit:  MinURLLength,
			Value:  url,
			format: "%[1]s must be greater or equal to than %[3]d characters long, but it is %[2]d characters long. (Field was set to `%[4]s`.)",
		}
	case !strings.HasPrefix(url, "https://"):
		return &FormatError{Field: field, Value: url, format: "%[1]s must begin with https://. (Field was set to `%[2]s`.)"}
	}

	switch parts := strings.Split(url, "://"); {
	case len(parts) > 2:
		return &FormatError{Field: field, Value: url, format: "%[1]s contains an invalid sequence of characters"}
	case len(parts) < 2:
		return &FormatError{Field: field, Value: url, format: "%[1]s is missing content after protocol."}
	}

	if strings.Contains(url, "@") {
		return &FormatError{Field: field, Value: url, format: "%[1]s cannot contain authentication information"}
	}
	return nil
}

func validateName(p *api.InitPayload) error {
	if p.Name == nil {
		return errMissing("name")
	}
	return validateMetadataLength("SnsMetadata.name", *p.Name, MinNameLength, MaxNameLength)
}

func validateDescription(p *api.InitPayload) error {
	if p.Description == nil {
		return errMissing("description")
	}
	return validateMetadataLength("SnsMetadata.description", *p.Description, MinDescriptionLength, MaxDescriptionLength)
}

func validateMetadataLength(field, value string, min, max int) error {
	switch {
	case len(value) > max:
		return &LengthError{Field: field, Length: len(value), Limit: max, format: "%[1]s must be less than %[3]d characters"}
	case len(value) < min:
		return &LengthError{Field: field, Length: len(value), Limit: min, format: "%[1]s must be greater than %[3]d characters"}
	}
	return nil
}
