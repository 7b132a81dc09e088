// Package content decodes and encodes the opaque content field of a post.
//
// A post's content is one of three shapes: raw text, a generic JSON
// payload {text, imageUrl} or a movie payload {director, genre, year,
// description, imageUrl}. Callers decode once and work with Decoded.
package content

import (
	"bytes"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind identifies the decoded shape
type Kind int

const (
	Plain Kind = iota
	Generic
	Movie
)

func (k Kind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Movie:
		return "movie"
	default:
		return "plain"
	}
}

// MovieDetails holds the structured fields of a movie post
type MovieDetails struct {
	Director    string `json:"director"`
	Genre       string `json:"genre"`
	Year        string `json:"year"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Decoded is the result of decoding a post's content
type Decoded struct {
	Kind  Kind
	Raw   string
	text  string
	image string
	Movie *MovieDetails
}

// Text returns the displayable body. For movie posts this is the description.
func (d Decoded) Text() string {
	return d.text
}

// ImageKey returns the local image key, or "" when the post has no image
func (d Decoded) ImageKey() string {
	return d.image
}

// HasImage reports whether the content references a local image
func (d Decoded) HasImage() bool {
	return d.image != ""
}

// field returns the value under key when it is a string
func field(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// Decode never fails. Anything that is not a recognised JSON object is plain text.
// Only text, description and imageUrl decide the shape, and only as non-empty strings.
// Other fields are read leniently and never reject a payload.
func Decode(raw string) Decoded {
	plain := Decoded{Kind: Plain, Raw: raw, text: raw}

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return plain
	}

	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil || obj == nil {
		return plain
	}

	text := field(obj, "text")
	image := field(obj, "imageUrl")
	description := field(obj, "description")

	switch {
	case text != "":
		return Decoded{Kind: Generic, Raw: raw, text: text, image: image}
	case description != "" && image != "":
		return Decoded{
			Kind:  Movie,
			Raw:   raw,
			text:  description,
			image: image,
			Movie: &MovieDetails{
				Director:    looseString(obj["director"]),
				Genre:       looseString(obj["genre"]),
				Year:        looseString(obj["year"]),
				Description: description,
				ImageURL:    image,
			},
		}
	case image != "":
		return Decoded{Kind: Generic, Raw: raw, image: image}
	default:
		return plain
	}
}

// looseString renders a display field that older clients may have written as a
// number or a list of strings
func looseString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s := looseString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// EncodeGeneric encodes a generic post. Without an image the text is returned as is.
func EncodeGeneric(text, imageKey string) string {
	if imageKey == "" {
		return text
	}
	b, err := json.Marshal(struct {
		Text     string `json:"text"`
		ImageURL string `json:"imageUrl"`
	}{text, imageKey})
	if err != nil {
		return text
	}
	return string(b)
}

// EncodeMovie encodes a movie post. A missing image is written as null.
func EncodeMovie(m MovieDetails) string {
	var image *string
	if m.ImageURL != "" {
		image = &m.ImageURL
	}
	b, err := json.Marshal(struct {
		Director    string  `json:"director"`
		Genre       string  `json:"genre"`
		Year        string  `json:"year"`
		Description string  `json:"description"`
		ImageURL    *string `json:"imageUrl"`
	}{m.Director, m.Genre, m.Year, m.Description, image})
	if err != nil {
		return m.Description
	}
	return string(b)
}

// Body returns the content to submit for a new or edited generic post
func Body(text, imageKey string) string {
	return EncodeGeneric(text, imageKey)
}
