package svgattr

import (
	"fmt"
	"strings"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

// Align is the alignment keyword half of preserveAspectRatio.
type Align int

const (
	AlignNone Align = iota
	AlignXMinYMin
	AlignXMidYMin
	AlignXMaxYMin
	AlignXMinYMid
	AlignXMidYMid
	AlignXMaxYMid
	AlignXMinYMax
	AlignXMidYMax
	AlignXMaxYMax
)

var alignKeywords = map[string]Align{
	"none":     AlignNone,
	"xminymin": AlignXMinYMin,
	"xmidymin": AlignXMidYMin,
	"xmaxymin": AlignXMaxYMin,
	"xminymid": AlignXMinYMid,
	"xmidymid": AlignXMidYMid,
	"xmaxymid": AlignXMaxYMid,
	"xminymax": AlignXMinYMax,
	"xmidymax": AlignXMidYMax,
	"xmaxymax": AlignXMaxYMax,
}

// MeetOrSlice is the scaling strategy half of preserveAspectRatio.
type MeetOrSlice int

const (
	Meet MeetOrSlice = iota
	Slice
)

// PreserveAspectRatio is the parsed form of the preserveAspectRatio
// attribute: "[defer] <align> [<meetOrSlice>]".
type PreserveAspectRatio struct {
	Defer       bool
	Align       Align
	MeetOrSlice MeetOrSlice
}

// ParsePreserveAspectRatio parses the preserveAspectRatio attribute
// value from its tokenized component values.
func ParsePreserveAspectRatio(values []cssvalue.ComponentValue) (PreserveAspectRatio, *perr.Error) {
	idents := identTokens(values)
	if len(idents) == 0 {
		return PreserveAspectRatio{}, perr.New("expected an align keyword", perr.Offset{})
	}

	result := PreserveAspectRatio{MeetOrSlice: Meet}
	i := 0
	if strings.EqualFold(idents[i].Text, "defer") {
		result.Defer = true
		i++
	}
	if i >= len(idents) {
		return PreserveAspectRatio{}, perr.New("expected an align keyword", idents[len(idents)-1].Offset)
	}
	align, ok := alignKeywords[strings.ToLower(idents[i].Text)]
	if !ok {
		return PreserveAspectRatio{}, perr.New(fmt.Sprintf("unrecognized align keyword %q", idents[i].Text), idents[i].Offset)
	}
	result.Align = align
	i++

	if i < len(idents) {
		switch strings.ToLower(idents[i].Text) {
		case "meet":
			result.MeetOrSlice = Meet
		case "slice":
			result.MeetOrSlice = Slice
		default:
			return PreserveAspectRatio{}, perr.New(fmt.Sprintf("unrecognized meetOrSlice keyword %q", idents[i].Text), idents[i].Offset)
		}
		i++
	}
	if i != len(idents) {
		return PreserveAspectRatio{}, perr.New("unexpected trailing content in preserveAspectRatio", idents[i].Offset)
	}
	return result, nil
}

func identTokens(values []cssvalue.ComponentValue) []csstoken.Token {
	var out []csstoken.Token
	for _, cv := range values {
		if cv.IsToken() && cv.Token.Kind == csstoken.Ident {
			out = append(out, cv.Token)
		}
	}
	return out
}
