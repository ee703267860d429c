package model

// Ratios 表示各类别在已计数行中的百分比。
// 未参与计数的类别（例如已计入 loc 的注释）保持为 0。
type Ratios struct {
	Blank    float64 `json:"blank"`
	Comments float64 `json:"comments"`
	Docs     float64 `json:"docs"`
	Loc      float64 `json:"loc"`
}

// Ratios 计算各类别占比。
//
// 分母为 blank + loc，再加上未计入 loc 的注释与文档注释行。
// 分母为 0 时（没有任何行）所有比例均为 0，不返回错误。
func (s Stats) Ratios(policy CountPolicy) Ratios {
	loc := s.Loc(policy)
	denominator := s.Blank + loc

	var comments, docs int64
	if !policy.IncludeComments {
		comments = s.Comments()
		denominator += comments
	}
	if !policy.IncludeDocs {
		docs = s.DocComment
		denominator += docs
	}

	if denominator == 0 {
		return Ratios{}
	}

	return Ratios{
		Blank:    percent(s.Blank, denominator),
		Comments: percent(comments, denominator),
		Docs:     percent(docs, denominator),
		Loc:      percent(loc, denominator),
	}
}

func percent(part int64, total int64) float64 {
	return float64(part) * 100 / float64(total)
}

// FileReport 是单文件的对外输出行。
type FileReport struct {
	Path         string `json:"path"`
	Loc          int64  `json:"loc"`
	BlankLines   int64  `json:"blank_lines"`
	CommentLines int64  `json:"comment_lines"`
	DocLines     int64  `json:"doc_lines"`
}

// Report 是输出层使用的统计记录，JSON 字段名即对外约定。
type Report struct {
	ScannedPath  string       `json:"scanned_path"`
	Files        int64        `json:"files"`
	Loc          int64        `json:"loc"`
	Todo         int64        `json:"todo"`
	Fixme        int64        `json:"fixme"`
	Structs      int64        `json:"structs"`
	Functions    int64        `json:"functions"`
	ImplBlocks   int64        `json:"impl_blocks"`
	Macros       int64        `json:"macros"`
	BlankLines   int64        `json:"blank_lines"`
	CommentLines int64        `json:"comment_lines"`
	DocLines     int64        `json:"doc_lines"`
	Ratio        *Ratios      `json:"ratio,omitempty"`
	FileReports  []FileReport `json:"file_reports,omitempty"`
}

// NewReport 根据扫描结果和计数策略生成输出记录。
// withRatio 为 true 时附带比例信息。
func NewReport(result ScanResult, policy CountPolicy, withRatio bool) Report {
	stats := result.Stats
	report := Report{
		ScannedPath:  result.ScannedPath,
		Files:        stats.Files,
		Loc:          stats.Loc(policy),
		Todo:         stats.Todo,
		Fixme:        stats.Fixme,
		Structs:      stats.Structs,
		Functions:    stats.Functions,
		ImplBlocks:   stats.ImplBlocks,
		Macros:       stats.Macros,
		BlankLines:   stats.Blank,
		CommentLines: stats.Comments(),
		DocLines:     stats.DocComment,
	}

	if withRatio {
		ratios := stats.Ratios(policy)
		report.Ratio = &ratios
	}

	for _, item := range result.Files {
		report.FileReports = append(report.FileReports, FileReport{
			Path:         item.Path,
			Loc:          item.Tally.Loc(policy),
			BlankLines:   item.Tally.Blank,
			CommentLines: item.Tally.Comments(),
			DocLines:     item.Tally.DocComment,
		})
	}

	return report
}
