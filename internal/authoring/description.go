package authoring

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const (
	DescriptionBudget = 4000
	HeadlineMaxLength = 120

	BulletDelimiter = "•"
	bulletJoiner    = " " + BulletDelimiter + " "
)

// DescriptionBlock 课程描述中的一段，以标题开头；Text 或 Points 为 nil 表示该段未启用此字段
type DescriptionBlock struct {
	Headline string   `json:"headline"`
	Text     *string  `json:"text,omitempty"`
	Points   []string `json:"point,omitempty"`
}

func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

// pointsLen 要点字数，不计分隔符
func pointsLen(points []string) int {
	return textLen(strings.Join(points, ""))
}

func (b DescriptionBlock) consumed() int {
	n := textLen(b.Headline) + pointsLen(b.Points)
	if b.Text != nil {
		n += textLen(*b.Text)
	}
	return n
}

func (b DescriptionBlock) clone() DescriptionBlock {
	out := DescriptionBlock{Headline: b.Headline}
	if b.Text != nil {
		t := *b.Text
		out.Text = &t
	}
	if b.Points != nil {
		out.Points = make([]string, len(b.Points))
		copy(out.Points, b.Points)
	}
	return out
}

func (b DescriptionBlock) HasText() bool   { return b.Text != nil }
func (b DescriptionBlock) HasPoints() bool { return b.Points != nil }

// ParsePoints 按 • 拆分要点输入，去除首尾空白并丢弃空片段
func ParsePoints(input string) []string {
	points := []string{}
	for _, frag := range strings.Split(input, BulletDelimiter) {
		if frag = strings.TrimSpace(frag); frag != "" {
			points = append(points, frag)
		}
	}
	return points
}

// FormatPoints 将要点还原为可编辑文本
func FormatPoints(points []string) string {
	return strings.Join(points, bulletJoiner)
}

// DescriptionBlockList 课程描述段落列表，编辑后总字数不超过 DescriptionBudget
type DescriptionBlockList struct {
	blocks []DescriptionBlock
}

// NewDescriptionBlockList 初始只有一个空段落
func NewDescriptionBlockList() DescriptionBlockList {
	return DescriptionBlockList{blocks: []DescriptionBlock{{}}}
}

func (l DescriptionBlockList) Len() int { return len(l.blocks) }

func (l DescriptionBlockList) Blocks() []DescriptionBlock {
	out := make([]DescriptionBlock, len(l.blocks))
	for i, b := range l.blocks {
		out[i] = b.clone()
	}
	return out
}

func (l DescriptionBlockList) At(i int) (DescriptionBlock, error) {
	if i < 0 || i >= len(l.blocks) {
		return DescriptionBlock{}, ErrIndexOutOfRange
	}
	return l.blocks[i].clone(), nil
}

func (l DescriptionBlockList) TotalConsumed() int {
	total := 0
	for _, b := range l.blocks {
		total += b.consumed()
	}
	return total
}

func (l DescriptionBlockList) Remaining() int {
	return DescriptionBudget - l.TotalConsumed()
}

func (l DescriptionBlockList) AddBlock() (DescriptionBlockList, error) {
	if l.TotalConsumed() >= DescriptionBudget {
		return l, ErrBudgetExceeded
	}
	next := make([]DescriptionBlock, len(l.blocks), len(l.blocks)+1)
	copy(next, l.blocks)
	return DescriptionBlockList{blocks: append(next, DescriptionBlock{})}, nil
}

func (l DescriptionBlockList) RemoveBlock(i int) (DescriptionBlockList, error) {
	if i == 0 {
		return l, ErrFirstBlockRemoval
	}
	if i < 0 || i >= len(l.blocks) {
		return l, ErrIndexOutOfRange
	}
	next := make([]DescriptionBlock, 0, len(l.blocks)-1)
	next = append(next, l.blocks[:i]...)
	next = append(next, l.blocks[i+1:]...)
	return DescriptionBlockList{blocks: next}, nil
}

// edit 在预算允许时用 fn 修改第 i 段；oldLen/newLen 为被替换字段修改前后的字数
func (l DescriptionBlockList) edit(i int, oldLen, newLen func(DescriptionBlock) int, fn func(*DescriptionBlock)) (DescriptionBlockList, error) {
	if i < 0 || i >= len(l.blocks) {
		return l, ErrIndexOutOfRange
	}
	b := l.blocks[i]
	before, after := oldLen(b), newLen(b)
	// 已超预算的草稿（如历史数据）允许缩减内容
	if after > before && l.TotalConsumed()-before+after > DescriptionBudget {
		return l, ErrBudgetExceeded
	}
	next := make([]DescriptionBlock, len(l.blocks))
	copy(next, l.blocks)
	updated := b.clone()
	fn(&updated)
	next[i] = updated
	return DescriptionBlockList{blocks: next}, nil
}

func (l DescriptionBlockList) SetHeadline(i int, value string) (DescriptionBlockList, error) {
	if textLen(value) > HeadlineMaxLength {
		return l, ErrHeadlineTooLong
	}
	return l.edit(i,
		func(b DescriptionBlock) int { return textLen(b.Headline) },
		func(DescriptionBlock) int { return textLen(value) },
		func(b *DescriptionBlock) { b.Headline = value },
	)
}

func (l DescriptionBlockList) SetText(i int, value string) (DescriptionBlockList, error) {
	return l.edit(i,
		func(b DescriptionBlock) int {
			if b.Text == nil {
				return 0
			}
			return textLen(*b.Text)
		},
		func(DescriptionBlock) int { return textLen(value) },
		func(b *DescriptionBlock) { b.Text = &value },
	)
}

func (l DescriptionBlockList) SetPoints(i int, input string) (DescriptionBlockList, error) {
	points := ParsePoints(input)
	return l.edit(i,
		func(b DescriptionBlock) int { return pointsLen(b.Points) },
		func(DescriptionBlock) int { return pointsLen(points) },
		func(b *DescriptionBlock) { b.Points = points },
	)
}

// AddText 为第 i 段启用正文，已启用时不做处理
func (l DescriptionBlockList) AddText(i int) (DescriptionBlockList, error) {
	if i < 0 || i >= len(l.blocks) {
		return l, ErrIndexOutOfRange
	}
	if l.blocks[i].Text != nil {
		return l, nil
	}
	return l.SetText(i, "")
}

// AddPoints 为第 i 段启用要点列表，已启用时不做处理
func (l DescriptionBlockList) AddPoints(i int) (DescriptionBlockList, error) {
	if i < 0 || i >= len(l.blocks) {
		return l, ErrIndexOutOfRange
	}
	if l.blocks[i].Points != nil {
		return l, nil
	}
	return l.SetPoints(i, "")
}

// descriptionFromBlocks 加载已有段落，为空时补一个空段落
func descriptionFromBlocks(blocks []DescriptionBlock) DescriptionBlockList {
	if len(blocks) == 0 {
		return NewDescriptionBlockList()
	}
	out := make([]DescriptionBlock, len(blocks))
	for i, b := range blocks {
		out[i] = b.clone()
	}
	return DescriptionBlockList{blocks: out}
}

type descriptionBlockJSON struct {
	Headline string    `json:"headline"`
	Text     *string   `json:"text,omitempty"`
	Points   *[]string `json:"point,omitempty"`
}

func (l DescriptionBlockList) MarshalJSON() ([]byte, error) {
	raw := make([]descriptionBlockJSON, len(l.blocks))
	for i, b := range l.Blocks() {
		raw[i] = descriptionBlockJSON{Headline: b.Headline, Text: b.Text}
		if b.Points != nil {
			points := b.Points
			raw[i].Points = &points
		}
	}
	return json.Marshal(raw)
}

func (l *DescriptionBlockList) UnmarshalJSON(data []byte) error {
	var raw []descriptionBlockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	blocks := make([]DescriptionBlock, len(raw))
	for i, r := range raw {
		blocks[i] = DescriptionBlock{Headline: r.Headline, Text: r.Text}
		if r.Points != nil {
			blocks[i].Points = *r.Points
			if blocks[i].Points == nil {
				blocks[i].Points = []string{}
			}
		}
	}
	*l = descriptionFromBlocks(blocks)
	return nil
}
