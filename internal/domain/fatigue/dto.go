package fatigue

type ResultResponse struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	PatternID  string  `json:"pattern_id"`
	RiskIndex  float64 `json:"risk_index"`
	RawScore   float64 `json:"raw_score"`
	Band       string  `json:"band"`
}

type SummaryResponse struct {
	MaxFRI      float64 `json:"max_fri"`
	AvgFRI      float64 `json:"avg_fri"`
	OverallRisk string  `json:"overall_risk"`
}

type EvaluationResponse struct {
	Results []ResultResponse `json:"results"`
	Summary SummaryResponse  `json:"summary"`
}

const dateLayout = "2006-01-02"

func ToResultResponse(r Result) ResultResponse {
	return ResultResponse{
		EmployeeID: r.Occurrence.EmployeeID,
		Date:       r.Occurrence.Date.Format(dateLayout),
		PatternID:  r.Occurrence.PatternID,
		RiskIndex:  r.RiskIndex,
		RawScore:   r.RawScore,
		Band:       string(r.Band),
	}
}
