package gff

import (
	"fmt"
	"slices"
)

// ResRef is a resource name of at most 16 bytes.
type ResRef string

type Vector3 struct {
	X, Y, Z float32
}

type Vector4 struct {
	X, Y, Z, W float32
}

type Language uint8

const (
	LanguageEnglish            Language = 0
	LanguageFrench             Language = 1
	LanguageGerman             Language = 2
	LanguageItalian            Language = 3
	LanguageSpanish            Language = 4
	LanguagePolish             Language = 5
	LanguageKorean             Language = 128
	LanguageChineseTraditional Language = 129
	LanguageChineseSimplified  Language = 130
	LanguageJapanese           Language = 131
)

func (l Language) String() string {
	switch l {
	case LanguageEnglish:
		return "english"
	case LanguageFrench:
		return "french"
	case LanguageGerman:
		return "german"
	case LanguageItalian:
		return "italian"
	case LanguageSpanish:
		return "spanish"
	case LanguagePolish:
		return "polish"
	case LanguageKorean:
		return "korean"
	case LanguageChineseTraditional:
		return "chinese_traditional"
	case LanguageChineseSimplified:
		return "chinese_simplified"
	case LanguageJapanese:
		return "japanese"
	default:
		return fmt.Sprintf("language(%d)", uint8(l))
	}
}

type Gender uint8

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return fmt.Sprintf("gender(%d)", uint8(g))
	}
}

// Substring is one language/gender variant of a LocString.
type Substring struct {
	Language Language
	Gender   Gender
	Text     string
}

// ID packs the language and gender the way the field-data arena stores them:
// gender in the low byte, language in the next.
func (s Substring) ID() uint32 {
	return uint32(s.Language)<<8 | uint32(s.Gender)
}

func substringFromID(id uint32, text string) Substring {
	return Substring{
		Language: Language(id >> 8 & 0xff),
		Gender:   Gender(id & 0xff),
		Text:     text,
	}
}

// LocString is a localized string: an optional talk-table reference plus
// inline substrings. StringRef is -1 when there is no reference.
type LocString struct {
	StringRef  int32
	Substrings []Substring
}

// NewLocString returns a LocString with no talk-table reference.
func NewLocString() LocString {
	return LocString{StringRef: -1}
}

func (l LocString) Get(lang Language, g Gender) (string, bool) {
	for _, s := range l.Substrings {
		if s.Language == lang && s.Gender == g {
			return s.Text, true
		}
	}
	return "", false
}

// Set replaces the substring for (lang, g) or appends a new one.
func (l *LocString) Set(lang Language, g Gender, text string) {
	for i := range l.Substrings {
		if l.Substrings[i].Language == lang && l.Substrings[i].Gender == g {
			l.Substrings[i].Text = text
			return
		}
	}
	l.Substrings = append(l.Substrings, Substring{Language: lang, Gender: g, Text: text})
}

func (l *LocString) Remove(lang Language, g Gender) bool {
	for i := range l.Substrings {
		if l.Substrings[i].Language == lang && l.Substrings[i].Gender == g {
			l.Substrings = slices.Delete(l.Substrings, i, i+1)
			return true
		}
	}
	return false
}

func (l LocString) Len() int { return len(l.Substrings) }

// Equal compares reference and substrings in order.
func (l LocString) Equal(o LocString) bool {
	return l.StringRef == o.StringRef && slices.Equal(l.Substrings, o.Substrings)
}

// checkValue reports whether v has the Go shape that encodes as t.
func checkValue(t FieldType, v any) error {
	ok := false
	switch t {
	case TypeUInt8:
		_, ok = v.(uint8)
	case TypeInt8:
		_, ok = v.(int8)
	case TypeUInt16:
		_, ok = v.(uint16)
	case TypeInt16:
		_, ok = v.(int16)
	case TypeUInt32:
		_, ok = v.(uint32)
	case TypeInt32:
		_, ok = v.(int32)
	case TypeUInt64:
		_, ok = v.(uint64)
	case TypeInt64:
		_, ok = v.(int64)
	case TypeSingle:
		_, ok = v.(float32)
	case TypeDouble:
		_, ok = v.(float64)
	case TypeString:
		_, ok = v.(string)
	case TypeResRef:
		var r ResRef
		r, ok = v.(ResRef)
		if ok && len(r) > MaxResRefLen {
			return fmt.Errorf("%w: %q", ErrResRefTooLong, string(r))
		}
	case TypeLocString:
		_, ok = v.(LocString)
	case TypeBinary:
		_, ok = v.([]byte)
	case TypeStruct:
		var s *Struct
		s, ok = v.(*Struct)
		ok = ok && s != nil
	case TypeList:
		var l *List
		l, ok = v.(*List)
		ok = ok && l != nil
	case TypeVector4:
		_, ok = v.(Vector4)
	case TypeVector3:
		_, ok = v.(Vector3)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFieldType, uint32(t))
	}
	if !ok {
		return fmt.Errorf("%w: %s field holds %T", ErrTypeMismatch, t, v)
	}
	return nil
}
