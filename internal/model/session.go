package model

type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

func (s Slot) Valid() bool {
	return s == SlotA || s == SlotB
}

type Phase string

const (
	PhaseSeekingPair  Phase = "seeking_pair"
	PhaseSeekingTheme Phase = "seeking_theme"
	PhaseWon          Phase = "won"
)

// 缩放惩罚由前端负责，这里只给出常量
const (
	ZoomStart = 3.0
	ZoomStep  = 0.5
	ZoomFloor = 1.0
)

// MinAttempts 两个角色加一个主题，全部一次猜中
const MinAttempts = 3

// swagger:model GuessSession
type GuessSession struct {
	Date         string   `json:"date"`
	FoundSlots   []Slot   `json:"foundSlots"`
	WrongGuesses []string `json:"wrongGuesses"`
	Attempts     int      `json:"attempts"`
	Phase        Phase    `json:"phase"`
	GivenUp      bool     `json:"givenUp"`

	// ThemeStart 进入主题阶段时 WrongGuesses 的长度，之前的条目属于角色阶段
	ThemeStart int `json:"themeStart"`
}

func NewGuessSession(date string) GuessSession {
	return GuessSession{
		Date:         date,
		FoundSlots:   []Slot{},
		WrongGuesses: []string{},
		Phase:        PhaseSeekingPair,
	}
}

func (s *GuessSession) HasFound(slot Slot) bool {
	for _, f := range s.FoundSlots {
		if f == slot {
			return true
		}
	}
	return false
}

// PhaseWrongGuesses 当前阶段的错误猜测
func (s *GuessSession) PhaseWrongGuesses() []string {
	if s.Phase != PhaseSeekingTheme {
		return s.WrongGuesses
	}
	start := s.ThemeStart
	if start < 0 {
		start = 0
	}
	if start > len(s.WrongGuesses) {
		start = len(s.WrongGuesses)
	}
	return s.WrongGuesses[start:]
}

// HasWrongGuess 只在当前阶段内查重
func (s *GuessSession) HasWrongGuess(guess string) bool {
	normalized := NormalizeGuess(guess)
	for _, g := range s.PhaseWrongGuesses() {
		if NormalizeGuess(g) == normalized {
			return true
		}
	}
	return false
}

// Clone 返回深拷贝，调用方传入的会话不会被修改
func (s GuessSession) Clone() GuessSession {
	out := s
	out.FoundSlots = append([]Slot{}, s.FoundSlots...)
	out.WrongGuesses = append([]string{}, s.WrongGuesses...)
	if out.Phase == "" {
		out.Phase = PhaseSeekingPair
	}
	return out
}

// swagger:model GuessResult
type GuessResult struct {
	Correct      bool   `json:"correct"`
	Slot         *Slot  `json:"slot,omitempty"`
	Message      string `json:"message"`
	Phase        *Phase `json:"phase,omitempty"`
	Unavailable  bool   `json:"unavailable,omitempty"`
	AlreadyFound bool   `json:"alreadyFound,omitempty"`
	Duplicate    bool   `json:"duplicate,omitempty"`

	// Penalized 角色阶段猜错，前端缩小一级
	Penalized bool `json:"penalized,omitempty"`
}
