package prompt

var (
	LoadHistory = loadHistory
	SaveHistory = saveHistory
)
