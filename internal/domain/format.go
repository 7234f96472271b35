package domain

// MatchFormat is the series length agreed before the draft.
type MatchFormat string

const (
	FormatMD1 MatchFormat = "md1"
	FormatMD2 MatchFormat = "md2"
	FormatMD3 MatchFormat = "md3"
	FormatMD5 MatchFormat = "md5"
)

func (f MatchFormat) Valid() bool {
	switch f {
	case FormatMD1, FormatMD2, FormatMD3, FormatMD5:
		return true
	}
	return false
}

// Side is the starting side a captain claims on a picked map.
type Side string

const (
	SideCT Side = "CT"
	SideTR Side = "TR"
)

func (s Side) Valid() bool {
	return s == SideCT || s == SideTR
}
