// Package model 定义 locstat 的核心数据模型。
// 这些结构会被分类器、扫描器、输出层和命令层共同使用。
package model

// FileTally 表示单个文件的行级统计值。
//
// 注意：
// - 每一物理行只归入 Blank/Code/LineComment/BlockComment/DocComment 之一
// - Todo/Fixme 只在注释行上累计，与是否计入 loc 无关
// - Structs/Functions/ImplBlocks/Macros 只在开启 units 时累计
type FileTally struct {
	Code         int64 `json:"code"`
	Blank        int64 `json:"blank"`
	LineComment  int64 `json:"line_comment"`
	BlockComment int64 `json:"block_comment"`
	DocComment   int64 `json:"doc_comment"`

	Todo  int64 `json:"todo"`
	Fixme int64 `json:"fixme"`

	Structs    int64 `json:"structs"`
	Functions  int64 `json:"functions"`
	ImplBlocks int64 `json:"impl_blocks"`
	Macros     int64 `json:"macros"`
}

// Total 返回物理行总数。
func (t FileTally) Total() int64 {
	return t.Code + t.Blank + t.LineComment + t.BlockComment + t.DocComment
}

// Comments 返回普通注释行（行注释 + 块注释）。
func (t FileTally) Comments() int64 {
	return t.LineComment + t.BlockComment
}

// Loc 按计数策略返回代码行数。
// 被排除的注释类别既不计入 loc，也不会被当作代码。
func (t FileTally) Loc(policy CountPolicy) int64 {
	loc := t.Code
	if policy.IncludeComments {
		loc += t.Comments()
	}
	if policy.IncludeDocs {
		loc += t.DocComment
	}
	return loc
}

// Add 将另一个统计结果叠加到当前对象。
func (t *FileTally) Add(other FileTally) {
	t.Code += other.Code
	t.Blank += other.Blank
	t.LineComment += other.LineComment
	t.BlockComment += other.BlockComment
	t.DocComment += other.DocComment
	t.Todo += other.Todo
	t.Fixme += other.Fixme
	t.Structs += other.Structs
	t.Functions += other.Functions
	t.ImplBlocks += other.ImplBlocks
	t.Macros += other.Macros
}

// CountPolicy 描述注释类别是否计入 loc。
type CountPolicy struct {
	IncludeComments bool
	IncludeDocs     bool
}

// Stats 表示一次扫描的全局汇总。
// 在 FileTally 基础上额外增加 Files 字段，
// 用于表达“本次扫描统计到了多少个有效源码文件”。
type Stats struct {
	Files int64 `json:"files"`
	FileTally
}

// Merge 累加一个文件的统计值到全局汇总中。
func (s *Stats) Merge(tally FileTally) {
	s.Files++
	s.FileTally.Add(tally)
}

// FileResult 记录单文件扫描结果，仅在需要逐文件明细时保留。
type FileResult struct {
	Path  string    `json:"path"`
	Tally FileTally `json:"tally"`
}

// ScanResult 是扫描器的完整输出。
type ScanResult struct {
	ScannedPath string       `json:"scanned_path"`
	Stats       Stats        `json:"stats"`
	Files       []FileResult `json:"files,omitempty"`
}
