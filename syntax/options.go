package syntax

type RegexOptions int32

const (
	None   RegexOptions = 0x0000
	// Strict turns style and ambiguity warnings into errors
	Strict RegexOptions = 0x0001
)

func (o RegexOptions) strict() bool {
	return o&Strict != 0
}
