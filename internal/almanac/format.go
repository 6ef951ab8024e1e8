package almanac

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	literalPrefix = "static const uint8_t full_almanac[( LR1110_GNSS_FULL_UPDATE_N_ALMANACS * LR1110_GNSS_SINGLE_ALMANAC_WRITE_SIZE ) + 20] = { "
	literalSuffix = " };"
)

var ErrMalformedLiteral = errors.New("almanac: malformed array literal")

// Format renders the image as the full_almanac C array declaration.
// Each byte becomes a 0xHH token (uppercase) in original order.
func Format(img Image) string {
	var b strings.Builder
	b.Grow(len(literalPrefix) + len(img)*6 + len(literalSuffix))

	b.WriteString(literalPrefix)
	for i, v := range img {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "0x%02X", v)
	}
	b.WriteString(literalSuffix)

	return b.String()
}

// ParseArrayLiteral reads back the bytes of a C array initializer such as the
// one produced by Format. Text before the first '{' and after the matching '}'
// is ignored, so a whole generated header can be passed in.
func ParseArrayLiteral(text string) (Image, error) {
	open := strings.Index(text, "{")
	if open < 0 {
		return nil, fmt.Errorf("%w: missing '{'", ErrMalformedLiteral)
	}
	closing := strings.Index(text[open:], "}")
	if closing < 0 {
		return nil, fmt.Errorf("%w: missing '}'", ErrMalformedLiteral)
	}
	body := strings.TrimSpace(text[open+1 : open+closing])
	if body == "" {
		return Image{}, nil
	}

	tokens := strings.Split(body, ",")
	img := make(Image, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" && i == len(tokens)-1 {
			// trailing comma
			break
		}
		if len(tok) != 4 || (tok[:2] != "0x" && tok[:2] != "0X") {
			return nil, fmt.Errorf("%w: token %d %q is not 0xHH", ErrMalformedLiteral, i, tok)
		}
		v, err := strconv.ParseUint(tok[2:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q: %v", ErrMalformedLiteral, i, tok, err)
		}
		img = append(img, byte(v))
	}

	return img, nil
}
