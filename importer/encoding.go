package importer

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	EncodingAuto  = "auto"
	EncodingUTF8  = "utf-8"
	EncodingUTF16 = "utf-16"
	EncodingGBK   = "gbk"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decoderFor returns nil for auto; auto is resolved per file in readDecoded.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingAuto:
		return nil, nil
	case EncodingUTF8, "utf8":
		return &encoding.Decoder{Transformer: unicode.BOMOverride(unicode.UTF8.NewDecoder())}, nil
	case EncodingUTF16, "utf16", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case EncodingGBK:
		return simplifiedchinese.GBK.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported list encoding: %s", name)
	}
}

// readDecoded reads path into UTF-8. In auto mode a byte order mark selects
// UTF-8 or UTF-16; without one, valid UTF-8 is kept and anything else is
// decoded as GBK.
func readDecoded(path, name string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open list file %s: %w", path, err)
	}

	decoder, err := decoderFor(name)
	if err != nil {
		return nil, err
	}
	if decoder == nil {
		decoder = detect(raw)
	}
	if decoder == nil {
		return raw, nil
	}

	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, fmt.Errorf("decode list file %s: %w", path, err)
	}
	return decoded, nil
}

func detect(raw []byte) *encoding.Decoder {
	switch {
	case bytes.HasPrefix(raw, bomUTF8), bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		return &encoding.Decoder{Transformer: unicode.BOMOverride(unicode.UTF8.NewDecoder())}
	case utf8.Valid(raw):
		return nil
	default:
		return simplifiedchinese.GBK.NewDecoder()
	}
}
