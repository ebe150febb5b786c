package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// TagStat counts how often a tag was applied to a talent.
type TagStat struct {
	TagID   int64  `json:"tagId"`
	TagName string `json:"tagName"`
	TagType int    `json:"tagType,omitempty"`
	Count   int    `json:"count"`
}

// Talent is a search result in the talent market.
type Talent struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Gender             string    `json:"gender,omitempty"`
	PhotoURL           string    `json:"photoUrl,omitempty"`
	Status             bool      `json:"status"`
	CurrentCompanyName string    `json:"currentCompanyName,omitempty"`
	LatestOccupation   string    `json:"latestOccupation,omitempty"`
	OccupationHistory  []string  `json:"occupationHistory,omitempty"`
	AverageScore       float64   `json:"averageScore,omitempty"`
	EvaluationCount    int       `json:"evaluationCount,omitempty"`
	PositiveTags       []TagStat `json:"positiveTags,omitempty"`
	NeutralTags        []TagStat `json:"neutralTags,omitempty"`
	ProfileCount       int       `json:"profileCount,omitempty"`
	Bookmarked         bool      `json:"bookmarked,omitempty"`
	IsOwnEmployee      bool      `json:"isOwnEmployee,omitempty"`
}

// TalentSearch filters the talent market.
type TalentSearch struct {
	PageRequest
	Keyword              string   `json:"keyword,omitempty"`
	Occupation           string   `json:"occupation,omitempty"`
	Occupations          []string `json:"occupations,omitempty"`
	MinAverageScore      *float64 `json:"minAverageScore,omitempty"`
	MaxAverageScore      *float64 `json:"maxAverageScore,omitempty"`
	IncludeTagIDs        []int64  `json:"includeTagIds,omitempty"`
	ExcludeTagIDs        []int64  `json:"excludeTagIds,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	IndustryCategory     string   `json:"industryCategory,omitempty"`
	OnlyLeft             bool     `json:"onlyLeft,omitempty"`
	OnlyWorking          bool     `json:"onlyWorking,omitempty"`
	ExcludeOwnCompany    bool     `json:"excludeOwnCompany,omitempty"`
	ExcludeMajorIncident bool     `json:"excludeMajorIncident,omitempty"`
	SkipPointDeduction   bool     `json:"skipPointDeduction,omitempty"`
}

// TalentProfile is one employment period shown on the detail page.
type TalentProfile struct {
	ProfileID          int64   `json:"profileId"`
	CompanyID          int64   `json:"companyId,omitempty"`
	CompanyName        string  `json:"companyName,omitempty"`
	Occupation         string  `json:"occupation,omitempty"`
	StartDate          string  `json:"startDate,omitempty"`
	EndDate            string  `json:"endDate,omitempty"`
	AttendanceRate     float64 `json:"attendanceRate,omitempty"`
	HasMajorIncident   bool    `json:"hasMajorIncident,omitempty"`
	ReasonForLeaving   string  `json:"reasonForLeaving,omitempty"`
	PerformanceSummary string  `json:"performanceSummary,omitempty"`
	CanViewDetail      bool    `json:"canViewDetail,omitempty"`
}

// TalentDetail is the full talent page.
type TalentDetail struct {
	Talent
	Phone                   string             `json:"phone,omitempty"`
	Email                   string             `json:"email,omitempty"`
	Profiles                []TalentProfile    `json:"profiles,omitempty"`
	DimensionScores         map[string]float64 `json:"dimensionScores,omitempty"`
	CompanyPoints           float64            `json:"companyPoints,omitempty"`
	FreeEvaluationCount     int                `json:"freeEvaluationCount,omitempty"`
	UnlockedEvaluationCount int                `json:"unlockedEvaluationCount,omitempty"`
	LockedEvaluationCount   int                `json:"lockedEvaluationCount,omitempty"`
	CanRequestContact       bool               `json:"canRequestContact,omitempty"`
	ContactAuthorized       bool               `json:"contactAuthorized,omitempty"`
}

// CompareItem is one talent in a comparison.
type CompareItem struct {
	EmployeeID         int64              `json:"employeeId"`
	Name               string             `json:"name"`
	CurrentCompanyName string             `json:"currentCompanyName,omitempty"`
	WorkYears          int                `json:"workYears,omitempty"`
	LatestOccupation   string             `json:"latestOccupation,omitempty"`
	AverageScore       float64            `json:"averageScore,omitempty"`
	DimensionScores    map[string]float64 `json:"dimensionScores,omitempty"`
	EvaluationCount    int                `json:"evaluationCount,omitempty"`
	AvgAttendanceRate  float64            `json:"avgAttendanceRate,omitempty"`
	HasMajorIncident   bool               `json:"hasMajorIncident,omitempty"`
	Advantages         []string           `json:"advantages,omitempty"`
	Disadvantages      []string           `json:"disadvantages,omitempty"`
}

// TalentComparison is the result of comparing talents.
type TalentComparison struct {
	Items            []CompareItem `json:"items"`
	DimensionNames   []string      `json:"dimensionNames,omitempty"`
	AIAnalysisResult string        `json:"aiAnalysisResult,omitempty"`
}

type BookmarkRequest struct {
	EmployeeID int64  `json:"employeeId"`
	Remark     string `json:"remark,omitempty"`
}

// MaxCompare is the most talents the market compares at once.
const MaxCompare = 4

func (c *Client) SearchTalents(ctx context.Context, q TalentSearch) (*Page[Talent], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[Talent]](ctx, c, "/talent-market/search", q)
}

func (c *Client) TalentDetail(ctx context.Context, employeeID int64) (*TalentDetail, error) {
	return get[*TalentDetail](ctx, c, fmt.Sprintf("/talent-market/detail/%d", employeeID), nil)
}

func (c *Client) BookmarkTalent(ctx context.Context, req BookmarkRequest) (int64, error) {
	return post[int64](ctx, c, "/talent-market/bookmark", req)
}

func (c *Client) UnbookmarkTalent(ctx context.Context, employeeID int64) (bool, error) {
	return del[bool](ctx, c, fmt.Sprintf("/talent-market/bookmark/%d", employeeID), nil)
}

func (c *Client) BookmarkedTalents(ctx context.Context, p PageRequest) (*Page[Talent], error) {
	p = p.Normalize()
	q := url.Values{
		"pageNum":  []string{strconv.Itoa(p.PageNum)},
		"pageSize": []string{strconv.Itoa(p.PageSize)},
	}
	return get[*Page[Talent]](ctx, c, "/talent-market/bookmarks", q)
}

// CompareTalents compares two to MaxCompare talents.
func (c *Client) CompareTalents(ctx context.Context, employeeIDs []int64) (*TalentComparison, error) {
	return post[*TalentComparison](ctx, c, "/talent-market/compare", map[string][]int64{"employeeIds": employeeIDs})
}

func (c *Client) TalentTags(ctx context.Context) ([]EvaluationTag, error) {
	return get[[]EvaluationTag](ctx, c, "/talent-market/tags", nil)
}

// CheckTalentPermission reports whether the caller may use the market.
func (c *Client) CheckTalentPermission(ctx context.Context) (bool, error) {
	return get[bool](ctx, c, "/talent-market/check-permission", nil)
}
