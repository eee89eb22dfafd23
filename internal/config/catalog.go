package config

// 分类、公司与标签的静态目录。
// 启动时加载一次，运行期间只读；顺序即平手时的裁决顺序，不要随意调整。

// CategoryDef 一个固定类别及其双语关键词
type CategoryDef struct {
	Code       string
	Name       string
	NameEN     string
	Priority   int // 数字越小优先级越高
	KeywordsZH []string
	KeywordsEN []string
}

// Categories 固定类别枚举。平手时取排在前面的类别，该顺序是对外承诺的一部分。
var Categories = []CategoryDef{
	{
		Code: "news", Name: "新闻", NameEN: "News", Priority: 1,
		KeywordsZH: []string{"新闻", "动态", "报道", "消息"},
		KeywordsEN: []string{"news", "breaking", "report", "update", "announcement"},
	},
	{
		Code: "product", Name: "产品发布", NameEN: "Product Launch", Priority: 2,
		KeywordsZH: []string{"发布", "推出", "上线"},
		KeywordsEN: []string{"launch", "release", "announce", "unveil", "introduce"},
	},
	{
		Code: "technical", Name: "技术解读", NameEN: "Technical Analysis", Priority: 3,
		KeywordsZH: []string{"技术", "解析", "解读", "原理"},
		KeywordsEN: []string{"technical", "analysis", "explained", "how it works", "deep dive"},
	},
	{
		Code: "research", Name: "学术突破", NameEN: "Research Breakthrough", Priority: 4,
		KeywordsZH: []string{"论文", "研究", "突破", "学术", "科学家"},
		KeywordsEN: []string{"research", "paper", "breakthrough", "study", "academic"},
	},
	{
		Code: "interview", Name: "人物访谈", NameEN: "Interview", Priority: 5,
		KeywordsZH: []string{"访谈", "采访", "对话", "专访"},
		KeywordsEN: []string{"interview", "talk", "conversation", "dialogue", "speaks"},
	},
	{
		Code: "opinion", Name: "观点分析", NameEN: "Opinion & Analysis", Priority: 6,
		KeywordsZH: []string{"观点", "评论", "看法", "见解"},
		KeywordsEN: []string{"opinion", "commentary", "perspective", "view"},
	},
}

// DefaultCategory 所有类别都不命中时的兜底分类
const DefaultCategory = "news"

// MaxCategoryPriority 当前目录中最大的优先级数值，评分公式会用到
const MaxCategoryPriority = 6

// CategoryByCode 按 code 查找类别，未知返回 nil
func CategoryByCode(code string) *CategoryDef {
	for i := range Categories {
		if Categories[i].Code == code {
			return &Categories[i]
		}
	}
	return nil
}

// IsKnownCategory 判断 code 是否在固定枚举内
func IsKnownCategory(code string) bool {
	return CategoryByCode(code) != nil
}

// CompanyDef 已知公司及其双语关键词变体
type CompanyDef struct {
	Name       string
	SourceType string // international / domestic
	KeywordsZH []string
	KeywordsEN []string
}

var Companies = []CompanyDef{
	// 国际公司
	{Name: "OpenAI", SourceType: "international", KeywordsEN: []string{"OpenAI", "ChatGPT", "GPT"}},
	{Name: "Google", SourceType: "international", KeywordsZH: []string{"谷歌"}, KeywordsEN: []string{"Google", "DeepMind", "Gemini"}},
	{Name: "Anthropic", SourceType: "international", KeywordsEN: []string{"Anthropic", "Claude"}},
	{Name: "Meta", SourceType: "international", KeywordsEN: []string{"Meta", "Llama", "Facebook"}},
	{Name: "Microsoft", SourceType: "international", KeywordsZH: []string{"微软"}, KeywordsEN: []string{"Microsoft", "Copilot"}},
	{Name: "Apple", SourceType: "international", KeywordsZH: []string{"苹果"}, KeywordsEN: []string{"Apple", "iPhone", "Siri"}},
	{Name: "Amazon", SourceType: "international", KeywordsZH: []string{"亚马逊"}, KeywordsEN: []string{"Amazon", "AWS", "Alexa"}},
	{Name: "NVIDIA", SourceType: "international", KeywordsZH: []string{"英伟达"}, KeywordsEN: []string{"NVIDIA", "GPU"}},

	// 国内公司
	{Name: "百度", SourceType: "domestic", KeywordsZH: []string{"百度", "文心一言"}, KeywordsEN: []string{"Baidu", "ERNIE"}},
	{Name: "阿里巴巴", SourceType: "domestic", KeywordsZH: []string{"阿里巴巴", "阿里", "通义千问"}, KeywordsEN: []string{"Alibaba", "Tongyi"}},
	{Name: "腾讯", SourceType: "domestic", KeywordsZH: []string{"腾讯", "混元"}, KeywordsEN: []string{"Tencent", "Hunyuan"}},
	{Name: "字节跳动", SourceType: "domestic", KeywordsZH: []string{"字节跳动", "抖音", "豆包"}, KeywordsEN: []string{"ByteDance", "TikTok", "Doubao"}},
	{Name: "智谱AI", SourceType: "domestic", KeywordsZH: []string{"智谱AI", "ChatGLM"}, KeywordsEN: []string{"Zhipu", "ChatGLM", "GLM"}},
	{Name: "月之暗面", SourceType: "domestic", KeywordsZH: []string{"月之暗面", "Kimi"}, KeywordsEN: []string{"Moonshot", "Kimi"}},
	{Name: "华为", SourceType: "domestic", KeywordsZH: []string{"华为", "盘古", "昇腾"}, KeywordsEN: []string{"Huawei", "Pangu"}},
	{Name: "科大讯飞", SourceType: "domestic", KeywordsZH: []string{"科大讯飞", "星火"}, KeywordsEN: []string{"iFlytek", "Spark"}},
}

// CompanyByName 按名称查找公司，未知返回 nil
func CompanyByName(name string) *CompanyDef {
	for i := range Companies {
		if Companies[i].Name == name {
			return &Companies[i]
		}
	}
	return nil
}

// TagDef 技术标签及其关键词变体
type TagDef struct {
	Tag      string
	Keywords []string
}

var Tags = []TagDef{
	{Tag: "GPT", Keywords: []string{"gpt", "gpt-4", "gpt-5"}},
	{Tag: "LLM", Keywords: []string{"llm", "large language model", "大语言模型", "大模型"}},
	{Tag: "Transformer", Keywords: []string{"transformer"}},
	{Tag: "Diffusion", Keywords: []string{"diffusion", "stable diffusion", "dall-e", "midjourney"}},
	{Tag: "Computer Vision", Keywords: []string{"computer vision", "计算机视觉", "image", "video"}},
	{Tag: "NLP", Keywords: []string{"nlp", "natural language processing", "自然语言处理"}},
	{Tag: "Reinforcement Learning", Keywords: []string{"reinforcement learning", "强化学习"}},
	{Tag: "Deep Learning", Keywords: []string{"deep learning", "深度学习"}},
	{Tag: "Machine Learning", Keywords: []string{"machine learning", "机器学习"}},
	{Tag: "AI Agent", Keywords: []string{"agent", "autonomous", "智能体"}},
	{Tag: "Robotics", Keywords: []string{"robot", "机器人"}},
	{Tag: "AGI", Keywords: []string{"agi", "artificial general intelligence", "通用人工智能"}},
}

// ImportantSources 精选来源，这些来源的内容评分加成
var ImportantSources = []string{
	"OpenAI Blog", "Google AI Blog", "Meta AI", "Microsoft Blog", "DeepMind Blog", "Anthropic Blog",
}

// IsImportantSource 判断来源是否在精选列表内
func IsImportantSource(source string) bool {
	for _, s := range ImportantSources {
		if s == source {
			return true
		}
	}
	return false
}

// DomesticDomains 国内站点域名片段，URL 命中任意一项即判定为国内来源
var DomesticDomains = []string{
	"36kr.com", "huxiu.com", "leiphone.com", "jiqizhixin.com",
	"qbitai.com", "infoq.cn", "csdn.net", "baidu.com", "alibaba.com",
	"tencent.com", "bytedance.com", "163.com", "sina.com.cn",
}
