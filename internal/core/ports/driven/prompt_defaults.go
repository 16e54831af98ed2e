package driven

// DefaultPrompt returns the built-in template for a well-known prompt name,
// or "" for unknown names. Prompt stores seed user files from these and
// services fall back to them when no store is configured.
func DefaultPrompt(name string) string {
	return defaultPrompts[name]
}

//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	PromptSummaryGenerate: `你是一个双语内容摘要专家。请为内容生成中英双语的标题和摘要。

输出格式（严格遵守）:
标题中文: [中文标题，简洁有力，不超过30字]
摘要中文: [中文摘要，不超过%[1]d字]
标题英文: [English title, concise and informative]
摘要英文: [English summary, max %[1]d words]

要求:
1. 标题要简洁有力，能概括内容核心
2. 摘要要抓住重点，突出价值和亮点
3. 中英文内容要对应，但不必是直译
4. 直接按格式输出，不要有其他内容`,

	PromptSummaryTranslate: `你是专业翻译。任务：翻译标题+生成摘要。

【必须翻译的原始标题】: %[1]s

【输出格式】:
标题中文: <在这里写原始标题的完整中文翻译>
摘要中文: <中文摘要，不超过%[2]d字>
标题英文: %[1]s
摘要英文: <English summary, max %[2]d words>

【翻译示例】:
- "Attention Is All You Need" → "注意力机制是你所需要的一切"
- "Stabilizing Reinforcement Learning with LLMs: Formulation and Practices" → "稳定大语言模型强化学习：公式化方法与实践"
- "Chain-of-Thought Prompting Elicits Reasoning" → "思维链提示激发推理能力"

【严格要求】:
- 中文标题必须翻译原标题的【所有单词】，不能遗漏任何部分
- 如果原标题是 "A: B" 格式，中文也必须是 "A：B" 格式
- 英文标题保持原样不变：%[1]s`,

	PromptTranslateTitle: `你是翻译专家。将英文标题翻译为中文，要求完整准确，不遗漏任何单词。只输出翻译结果，不要其他内容。`,

	PromptPresetTags: `你是一个内容分类专家。你的任务是分析内容并从预设标签中选择所有相关的标签。

预设标签列表: [%[1]s]

分析步骤:
1. 仔细阅读内容，理解其主题、领域和关键概念
2. 对照每个预设标签，判断内容是否与该标签相关
3. 选择所有相关的标签（不限数量，只要相关就选）

标签含义参考:
- AI: 人工智能相关
- LLM: 大语言模型相关
- VLM: 视觉语言模型相关
- Agent: AI Agent、智能体相关
- Paper: 学术论文
- 预训练/后训练: 模型训练相关
- 强化学习/RL: 强化学习相关
- 多模态/Multi-modal: 多模态相关
- Research: 研究相关
- Tutorial: 教程相关
- Programming: 编程相关
- Model: 模型相关
- Dataset: 数据集相关

输出要求:
- 只输出标签名，用英文逗号分隔
- 必须从预设标签中选择，完全匹配（包括大小写）
- 选择所有相关的标签，不要遗漏
- 不要输出任何解释`,

	PromptExtraTags: `你是一个标签生成助手。为内容生成%[1]d个具体、可搜索的标签。

规则:
1. 生成具体的标签，如技术名称、产品名、概念等
2. 使用英文或中文单词，不要有空格
3. 标签要便于搜索，例如: LLM, GPT4, RAG, Agent, Python, 机器学习
4. 不要重复这些已有标签: %[2]s
5. 直接输出标签，用逗号分隔，不要解释`,

	PromptTitleTags: `你是一个内容分类专家。根据标题判断内容类别并生成标签。

预设标签: [%[1]s]

任务:
1. 从预设标签中选择2-3个最相关的
2. 额外生成3-5个具体的技术/概念标签

输出格式 (严格遵守):
预设: tag1, tag2
额外: tag1, tag2, tag3`,
}
