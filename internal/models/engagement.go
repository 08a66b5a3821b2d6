package models

// TimestampLayout is the second-resolution format used for engagement timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// ActionAskedAdvisor is logged when the heir asks the advisor about an asset.
const ActionAskedAdvisor = "Asked Advisor"

// EngagementEntry is one heir interaction. Asset and AssetType are copies
// taken at logging time, not live references.
type EngagementEntry struct {
	Timestamp string    `json:"timestamp" yaml:"timestamp"`
	Heir      string    `json:"heir" yaml:"heir"`
	Action    string    `json:"action" yaml:"action"`
	Asset     string    `json:"asset" yaml:"asset"`
	AssetType AssetType `json:"asset_type" yaml:"asset_type"`
}

// EngagementMetrics are the advisor dashboard figures derived from the log.
type EngagementMetrics struct {
	Interactions   int    `json:"interactions"`
	AssetsExplored int    `json:"assets_explored"`
	Score          int    `json:"score"`
	ClientFamily   string `json:"client_family"`
}
