package service

import (
	"math/rand"
	"strings"

	"github.com/placeprep/backend/internal/model"
)

// fallbackEntry is one canned question for a recognizable skill
// keyword. The table is a deliberately limited safety net used when
// the generation capability returns fewer questions than requested; it
// is not a content store and should not grow richer semantics.
type fallbackEntry struct {
	questionText  string
	options       model.OptionMap
	correctOption string
}

var fallbackSkillQuestions = map[string]fallbackEntry{
	"python": {
		questionText:  "Which Python data structure is mutable?",
		options:       model.OptionMap{"A": "tuple", "B": "list", "C": "str", "D": "bytes"},
		correctOption: "B",
	},
	"java": {
		questionText:  "Which keyword is used to inherit a class in Java?",
		options:       model.OptionMap{"A": "implements", "B": "extends", "C": "inherits", "D": "super"},
		correctOption: "B",
	},
	"javascript": {
		questionText:  "Which keyword declares a block-scoped variable in JavaScript?",
		options:       model.OptionMap{"A": "var", "B": "let", "C": "const", "D": "static"},
		correctOption: "B",
	},
	"typescript": {
		questionText:  "Which TypeScript feature adds static typing to variables?",
		options:       model.OptionMap{"A": "Decorators", "B": "Type annotations", "C": "Promises", "D": "Closures"},
		correctOption: "B",
	},
	"node.js": {
		questionText:  "Which Node.js module is used to create an HTTP server?",
		options:       model.OptionMap{"A": "http", "B": "fs", "C": "path", "D": "net"},
		correctOption: "A",
	},
	"react": {
		questionText:  "Which React hook manages component state in a function component?",
		options:       model.OptionMap{"A": "useMemo", "B": "useState", "C": "useRef", "D": "useEffect"},
		correctOption: "B",
	},
	"docker": {
		questionText:  "Which file contains Docker build instructions?",
		options:       model.OptionMap{"A": "docker.yml", "B": "Dockerfile", "C": "compose.json", "D": "build.cfg"},
		correctOption: "B",
	},
	"kubernetes": {
		questionText:  "Which Kubernetes object ensures a desired number of pod replicas?",
		options:       model.OptionMap{"A": "Service", "B": "Deployment", "C": "ConfigMap", "D": "Namespace"},
		correctOption: "B",
	},
	"aws": {
		questionText:  "Which AWS service provides object storage?",
		options:       model.OptionMap{"A": "EC2", "B": "S3", "C": "RDS", "D": "Lambda"},
		correctOption: "B",
	},
	"azure": {
		questionText:  "Which Azure service provides object storage?",
		options:       model.OptionMap{"A": "Blob Storage", "B": "Azure Functions", "C": "Cosmos DB", "D": "AKS"},
		correctOption: "A",
	},
	"postgresql": {
		questionText:  "Which SQL clause filters results after GROUP BY?",
		options:       model.OptionMap{"A": "WHERE", "B": "HAVING", "C": "ORDER BY", "D": "LIMIT"},
		correctOption: "B",
	},
	"mysql": {
		questionText:  "Which command creates an index in MySQL?",
		options:       model.OptionMap{"A": "CREATE INDEX", "B": "ADD INDEX", "C": "MAKE INDEX", "D": "INDEX CREATE"},
		correctOption: "A",
	},
	"mongodb": {
		questionText:  "Which MongoDB method inserts a single document?",
		options:       model.OptionMap{"A": "insertMany()", "B": "insertOne()", "C": "add()", "D": "create()"},
		correctOption: "B",
	},
	"redis": {
		questionText:  "Which Redis command sets a key's value?",
		options:       model.OptionMap{"A": "GET", "B": "SET", "C": "PUT", "D": "ADD"},
		correctOption: "B",
	},
	"git": {
		questionText:  "Which Git command creates a new branch and switches to it?",
		options:       model.OptionMap{"A": "git branch new", "B": "git switch -c new", "C": "git checkout", "D": "git init new"},
		correctOption: "B",
	},
	"jenkins": {
		questionText:  "Which file defines a Jenkins pipeline as code?",
		options:       model.OptionMap{"A": "pipeline.yml", "B": "Jenkinsfile", "C": "jenkins.json", "D": "build.gradle"},
		correctOption: "B",
	},
	"django": {
		questionText:  "Which Django file defines database models?",
		options:       model.OptionMap{"A": "views.py", "B": "models.py", "C": "urls.py", "D": "settings.py"},
		correctOption: "B",
	},
	"flask": {
		questionText:  "Which object represents the Flask application instance?",
		options:       model.OptionMap{"A": "Flask(__name__)", "B": "App()", "C": "Server()", "D": "FlaskApp()"},
		correctOption: "A",
	},
	"fastapi": {
		questionText:  "Which FastAPI decorator defines a GET endpoint?",
		options:       model.OptionMap{"A": "@app.get()", "B": "@app.route()", "C": "@app.fetch()", "D": "@app.read()"},
		correctOption: "A",
	},
	"spring boot": {
		questionText:  "Which annotation marks the main Spring Boot application class?",
		options:       model.OptionMap{"A": "@SpringBootApplication", "B": "@EnableSpring", "C": "@SpringMain", "D": "@SpringApp"},
		correctOption: "A",
	},
	"linux": {
		questionText:  "Which command lists files in a directory?",
		options:       model.OptionMap{"A": "ls", "B": "pwd", "C": "cat", "D": "touch"},
		correctOption: "A",
	},
	"bash": {
		questionText:  "Which symbol is used to reference a variable in Bash?",
		options:       model.OptionMap{"A": "&", "B": "$", "C": "#", "D": "@"},
		correctOption: "B",
	},
	"nginx": {
		questionText:  "NGINX is primarily used as a:",
		options:       model.OptionMap{"A": "Relational database", "B": "Reverse proxy and web server", "C": "Message broker", "D": "CI server"},
		correctOption: "B",
	},
	"prometheus": {
		questionText:  "Prometheus is primarily used for:",
		options:       model.OptionMap{"A": "Application monitoring and metrics", "B": "Authentication", "C": "Message queues", "D": "Object storage"},
		correctOption: "A",
	},
	"grafana": {
		questionText:  "Grafana is mainly used to:",
		options:       model.OptionMap{"A": "Run containers", "B": "Visualize metrics and dashboards", "C": "Compile code", "D": "Manage databases"},
		correctOption: "B",
	},
	"github": {
		questionText:  "GitHub is primarily a platform for:",
		options:       model.OptionMap{"A": "Code hosting and collaboration", "B": "Container orchestration", "C": "Database hosting", "D": "Monitoring"},
		correctOption: "A",
	},
	"gitlab": {
		questionText:  "GitLab CI/CD pipelines are defined in which file?",
		options:       model.OptionMap{"A": ".gitlab-ci.yml", "B": "Jenkinsfile", "C": "pipeline.yml", "D": ".gitlab.yml"},
		correctOption: "A",
	},
}

// fallbackKeywords fixes the match order; longer, more specific
// keywords come before their prefixes (e.g. "gitlab" before "git").
var fallbackKeywords = []string{
	"python", "javascript", "typescript", "java", "node.js", "react",
	"docker", "kubernetes", "aws", "azure", "postgresql", "mysql",
	"mongodb", "redis", "github", "gitlab", "git", "jenkins", "django",
	"flask", "fastapi", "spring boot", "linux", "bash", "nginx",
	"prometheus", "grafana",
}

// buildFallbackSkillQuestions backfills generated-question supply from
// the static table when the generation capability under-delivers. It
// matches each skill hint against the table by substring and cycles
// through the matches until count is met. No match means no backfill.
func buildFallbackSkillQuestions(skillHints []string, count int) []GeneratedCandidate {
	if len(skillHints) == 0 || count <= 0 {
		return nil
	}

	var available []fallbackEntry
	for _, skill := range dedupeOrdered(skillHints) {
		key := strings.ToLower(skill)
		for _, keyword := range fallbackKeywords {
			if strings.Contains(key, keyword) {
				available = append(available, fallbackSkillQuestions[keyword])
				break
			}
		}
	}
	if len(available) == 0 {
		return nil
	}
	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	questions := make([]GeneratedCandidate, 0, count)
	for i := 0; i < count; i++ {
		entry := available[i%len(available)]
		questions = append(questions, GeneratedCandidate{
			QuestionText:  entry.questionText,
			Options:       entry.options,
			CorrectOption: entry.correctOption,
			Category:      string(model.CategoryResume),
			Marks:         1,
		})
	}
	return questions
}
