package authoring

import "encoding/json"

type LearningPoint struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

type LearningPointList struct {
	points []LearningPoint
}

func NewLearningPointList(points ...LearningPoint) LearningPointList {
	out := make([]LearningPoint, len(points))
	copy(out, points)
	return LearningPointList{points: out}
}

func (l LearningPointList) Len() int { return len(l.points) }

func (l LearningPointList) Points() []LearningPoint {
	out := make([]LearningPoint, len(l.points))
	copy(out, l.points)
	return out
}

func (l LearningPointList) Add(p LearningPoint) LearningPointList {
	next := make([]LearningPoint, len(l.points), len(l.points)+1)
	copy(next, l.points)
	return LearningPointList{points: append(next, p)}
}

func (l LearningPointList) Set(i int, p LearningPoint) (LearningPointList, error) {
	if i < 0 || i >= len(l.points) {
		return l, ErrIndexOutOfRange
	}
	next := l.Points()
	next[i] = p
	return LearningPointList{points: next}, nil
}

func (l LearningPointList) Remove(i int) (LearningPointList, error) {
	if i < 0 || i >= len(l.points) {
		return l, ErrIndexOutOfRange
	}
	next := make([]LearningPoint, 0, len(l.points)-1)
	next = append(next, l.points[:i]...)
	next = append(next, l.points[i+1:]...)
	return LearningPointList{points: next}, nil
}

func (l LearningPointList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Points())
}

func (l *LearningPointList) UnmarshalJSON(data []byte) error {
	var points []LearningPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	*l = NewLearningPointList(points...)
	return nil
}
