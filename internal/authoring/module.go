package authoring

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
)

const moduleKeyPrefix = "module"

var moduleKeyPattern = regexp.MustCompile(`^module(\d+)$`)

// ModuleKeySuffix 解析 module<N> 中的 N
func ModuleKeySuffix(key string) (int, error) {
	m := moduleKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, ErrInvalidModuleKey
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, ErrInvalidModuleKey
	}
	return n, nil
}

func moduleKey(n int) string {
	return moduleKeyPrefix + strconv.Itoa(n)
}

type Module struct {
	Title    string          `json:"title"`
	Lessons  LessonList      `json:"lessons"`
	Quiz     QuizQuestionSet `json:"quiz"`
	Expanded bool            `json:"expanded"`
}

func NewModule() Module {
	return Module{
		Lessons:  NewLessonList(),
		Quiz:     NewQuizQuestionSet(ModuleQuizLength),
		Expanded: true,
	}
}

type moduleEntry struct {
	Key    string `json:"key"`
	Module Module `json:"module"`
}

// ModuleMap 按生成的 key 保存模块，按数字后缀升序排列；删除后不重新编号，key 不复用
type ModuleMap struct {
	entries []moduleEntry
	// 已分配过的最大后缀，随课程记录持久化
	seq int
}

func NewModuleMap() ModuleMap {
	return ModuleMap{entries: []moduleEntry{}}
}

func (m ModuleMap) Len() int { return len(m.entries) }

func (m ModuleMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

func (m ModuleMap) indexOf(key string) int {
	for i, e := range m.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func (m ModuleMap) Get(key string) (Module, bool) {
	i := m.indexOf(key)
	if i < 0 {
		return Module{}, false
	}
	return m.entries[i].Module, true
}

func (m ModuleMap) clone(extra int) []moduleEntry {
	out := make([]moduleEntry, len(m.entries), len(m.entries)+extra)
	copy(out, m.entries)
	return out
}

// AddModule 新增模块并返回 key
func (m ModuleMap) AddModule() (ModuleMap, string) {
	n := len(m.entries) + 1
	if n <= m.seq {
		n = m.seq + 1
	}
	key := moduleKey(n)
	next := append(m.clone(1), moduleEntry{Key: key, Module: NewModule()})
	return ModuleMap{entries: next, seq: n}, key
}

func (m ModuleMap) RemoveModule(key string) (ModuleMap, error) {
	i := m.indexOf(key)
	if i < 0 {
		return m, ErrModuleNotFound
	}
	next := make([]moduleEntry, 0, len(m.entries)-1)
	next = append(next, m.entries[:i]...)
	next = append(next, m.entries[i+1:]...)
	return ModuleMap{entries: next, seq: m.seq}, nil
}

// Update 用 fn 的结果替换 key 对应的模块
func (m ModuleMap) Update(key string, fn func(Module) (Module, error)) (ModuleMap, error) {
	i := m.indexOf(key)
	if i < 0 {
		return m, ErrModuleNotFound
	}
	mod, err := fn(m.entries[i].Module)
	if err != nil {
		return m, err
	}
	next := m.clone(0)
	next[i].Module = mod
	return ModuleMap{entries: next, seq: m.seq}, nil
}

func (m ModuleMap) SetTitle(key, value string) (ModuleMap, error) {
	return m.Update(key, func(mod Module) (Module, error) {
		mod.Title = value
		return mod, nil
	})
}

func (m ModuleMap) ToggleExpanded(key string) (ModuleMap, error) {
	return m.Update(key, func(mod Module) (Module, error) {
		mod.Expanded = !mod.Expanded
		return mod, nil
	})
}

func (m ModuleMap) HasQuizContent(key string) bool {
	mod, ok := m.Get(key)
	return ok && mod.Quiz.HasContent()
}

// put 加载时使用，调用方随后排序
func (m *ModuleMap) put(key string, suffix int, mod Module) {
	m.entries = append(m.entries, moduleEntry{Key: key, Module: mod})
	if suffix > m.seq {
		m.seq = suffix
	}
}

func (m *ModuleMap) sortEntries() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		a, _ := ModuleKeySuffix(m.entries[i].Key)
		b, _ := ModuleKeySuffix(m.entries[j].Key)
		return a < b
	})
}

type moduleMapJSON struct {
	Seq     int           `json:"seq"`
	Entries []moduleEntry `json:"entries"`
}

func (m ModuleMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(moduleMapJSON{Seq: m.seq, Entries: m.clone(0)})
}

func (m *ModuleMap) UnmarshalJSON(data []byte) error {
	var raw moduleMapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewModuleMap()
	out.seq = raw.Seq
	for _, e := range raw.Entries {
		n, err := ModuleKeySuffix(e.Key)
		if err != nil {
			return err
		}
		out.put(e.Key, n, e.Module)
	}
	out.sortEntries()
	*m = out
	return nil
}
