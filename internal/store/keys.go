package store

// Namespace prefixes every key written by lumen so a shared backend
// (redis in particular) can host other data.
const Namespace = "lumen:"

// Stable key names. Values are JSON.
const (
	KeyKnowledgeGraph = Namespace + "knowledge_graph"
	KeyHistory        = Namespace + "history"
	KeyCurriculum     = Namespace + "curriculum"
	KeyChapterIndex   = Namespace + "chapter_index"
	KeySectionIndex   = Namespace + "section_index"
	KeyArticleModules = Namespace + "article_modules"
	KeyModuleIndex    = Namespace + "module_index"
	KeyTheme          = Namespace + "theme"
	KeyFeed           = Namespace + "feed"
	KeyQueue          = Namespace + "queue"
)

// AllKeys lists every key lumen may write, for reset.
var AllKeys = []string{
	KeyKnowledgeGraph,
	KeyHistory,
	KeyCurriculum,
	KeyChapterIndex,
	KeySectionIndex,
	KeyArticleModules,
	KeyModuleIndex,
	KeyTheme,
	KeyFeed,
	KeyQueue,
}
