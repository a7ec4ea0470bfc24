package vocabulary

// Category names. The partition documents the catalog; it does not affect matching.
const (
	CategoryLanguages   = "languages"
	CategoryFrameworks  = "frameworks"
	CategoryDatabases   = "databases"
	CategoryCloudDevOps = "cloud_devops"
	CategoryDataScience = "data_science"
	CategoryMobile      = "mobile"
	CategoryTesting     = "testing"
	CategoryTooling     = "tooling"
	CategorySecurity    = "security"
	CategoryWeb         = "web"
	CategoryDesign      = "design"
	CategoryMethodology = "methodology"
	CategoryOS          = "os"
	CategoryNetworking  = "networking"
)

// technicalSkills is the hand-curated catalog. Soft and business skills are deliberately absent.
var technicalSkills = []Category{
	{Name: CategoryLanguages, Skills: []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "csharp", "php", "ruby", "go", "rust",
		"swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css", "jsx", "tsx", "perl",
		"dart", "julia", "erlang", "haskell", "assembly", "vb.net", "objective-c",
	}},
	{Name: CategoryFrameworks, Skills: []string{
		"react", "angular", "vue", "nodejs", "node.js", "express", "django", "flask", "spring", "laravel",
		"bootstrap", "tailwind", "jquery", "redux", "vuex", "tensorflow", "pytorch", "keras",
		"pandas", "numpy", "matplotlib", "scikit-learn", "sklearn", "opencv", "fastapi", "nest",
		"nextjs", "next.js", "nuxt", "ember", "backbone", "meteor", "gatsby", "svelte",
		"spring boot", "hibernate", "struts", "asp.net", ".net", "dotnet", "mvc", "wpf",
	}},
	{Name: CategoryDatabases, Skills: []string{
		"mysql", "postgresql", "postgres", "mongodb", "redis", "elasticsearch", "cassandra", "oracle",
		"sqlite", "dynamodb", "firebase", "supabase", "mariadb", "neo4j", "influxdb", "couchdb",
		"sql server", "mssql", "nosql", "graphql",
	}},
	{Name: CategoryCloudDevOps, Skills: []string{
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "jenkins", "gitlab", "github",
		"terraform", "ansible", "vagrant", "chef", "puppet", "nginx", "apache", "linux",
		"ubuntu", "centos", "debian", "bash", "powershell", "ci/cd", "devops", "microservices",
		"serverless", "lambda", "cloudformation", "helm", "istio", "prometheus", "grafana",
	}},
	{Name: CategoryDataScience, Skills: []string{
		"machine learning", "deep learning", "artificial intelligence", "data science",
		"data analysis", "data analytics", "big data", "hadoop", "spark", "kafka", "tableau", "power bi",
		"excel", "statistics", "regression", "classification", "clustering", "nlp",
		"computer vision", "neural networks", "ai", "ml", "data mining", "etl",
		"jupyter", "anaconda", "r studio", "sas", "spss",
	}},
	{Name: CategoryMobile, Skills: []string{
		"ios", "android", "react native", "flutter", "xamarin", "ionic", "cordova",
		"mobile development", "app development", "swift ui", "kotlin multiplatform",
	}},
	{Name: CategoryTesting, Skills: []string{
		"testing", "unit testing", "integration testing", "automation testing", "selenium", "jest", "pytest",
		"junit", "mocha", "cypress", "testng", "cucumber", "postman", "qa", "quality assurance",
		"tdd", "bdd", "test driven development",
	}},
	{Name: CategoryTooling, Skills: []string{
		"git", "github", "gitlab", "bitbucket", "svn", "mercurial", "version control",
		"jira", "confluence", "trello",
	}},
	{Name: CategorySecurity, Skills: []string{
		"cybersecurity", "information security", "penetration testing", "ethical hacking",
		"encryption", "ssl", "oauth", "jwt", "authentication", "authorization",
	}},
	{Name: CategoryWeb, Skills: []string{
		"web development", "frontend", "backend", "full stack", "rest api", "api development",
		"soap", "json", "xml", "ajax", "websockets", "graphql", "grpc",
	}},
	{Name: CategoryDesign, Skills: []string{
		"figma", "sketch", "adobe xd", "photoshop", "illustrator", "wireframing", "prototyping",
	}},
	{Name: CategoryMethodology, Skills: []string{
		"agile", "scrum", "kanban", "waterfall", "agile methodologies", "sprint planning",
	}},
	{Name: CategoryOS, Skills: []string{
		"windows", "macos", "unix", "freebsd", "windows server", "iis",
	}},
	{Name: CategoryNetworking, Skills: []string{
		"tcp/ip", "http", "https", "dns", "load balancing", "cdn", "vpc", "vpn",
	}},
}

// ambiguitySensitive lists database product names that double as common words or company names
var ambiguitySensitive = []string{
	"mongodb", "mysql", "postgresql", "oracle", "redis", "cassandra",
}
