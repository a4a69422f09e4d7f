package errors

import "google.golang.org/grpc/codes"

// CSV 洞察服务: 20
var (
	ErrCSVMissingFile = Register(New(MakeCode(ServiceCSV, CategoryRequest, 1), 400, codes.InvalidArgument, "File is required", "缺少上传文件"))
	ErrCSVParse       = Register(New(MakeCode(ServiceCSV, CategoryRequest, 2), 400, codes.InvalidArgument, "Failed to parse table", "表格解析失败"))
	ErrCSVEmpty       = Register(New(MakeCode(ServiceCSV, CategoryRequest, 3), 400, codes.InvalidArgument, "Dataset is empty", "数据集为空"))
	ErrCSVInsight     = Register(New(MakeCode(ServiceCSV, CategoryNetwork, 1), 502, codes.Unavailable, "Failed to generate insights", "洞察生成失败"))
)

// 图片代理服务: 21
var (
	ErrPromptRequired = Register(New(MakeCode(ServiceImage, CategoryRequest, 1), 400, codes.InvalidArgument, "Prompt is required", "缺少提示词"))
	ErrImageUpstream  = Register(New(MakeCode(ServiceImage, CategoryNetwork, 1), 502, codes.Unavailable, "Failed to generate image", "图片生成失败"))
	ErrImageTimeout   = Register(New(MakeCode(ServiceImage, CategoryTimeout, 1), 504, codes.DeadlineExceeded, "Image generation timed out", "图片生成超时"))
	ErrImageStore     = Register(New(MakeCode(ServiceImage, CategoryInternal, 1), 500, codes.Internal, "Failed to store image", "图片保存失败"))
)

// 文档问答服务: 22
var (
	ErrDocMissingFile     = Register(New(MakeCode(ServiceDocQA, CategoryRequest, 1), 400, codes.InvalidArgument, "File is required", "缺少上传文件"))
	ErrDocUnsupportedType = Register(New(MakeCode(ServiceDocQA, CategoryRequest, 2), 415, codes.InvalidArgument, "Unsupported file type", "不支持的文件类型"))
	ErrDocExtract         = Register(New(MakeCode(ServiceDocQA, CategoryRequest, 3), 400, codes.InvalidArgument, "Failed to extract text", "文本提取失败"))
	ErrQuestionRequired   = Register(New(MakeCode(ServiceDocQA, CategoryRequest, 4), 400, codes.InvalidArgument, "Question is required", "缺少问题"))
	ErrNoContext          = Register(New(MakeCode(ServiceDocQA, CategoryResource, 1), 404, codes.NotFound, "No relevant context found.", "未找到相关上下文"))
	ErrCorpusStore        = Register(New(MakeCode(ServiceDocQA, CategoryCache, 1), 500, codes.Internal, "Corpus store error", "语料存储错误"))
	ErrDocAnswer          = Register(New(MakeCode(ServiceDocQA, CategoryNetwork, 1), 502, codes.Unavailable, "Failed to generate answer", "答案生成失败"))
)

// 网页问答服务: 23
var (
	ErrInvalidURL        = Register(New(MakeCode(ServiceWebQA, CategoryRequest, 1), 400, codes.InvalidArgument, "A valid http(s) URL is required", "URL 无效"))
	ErrWebQuestion       = Register(New(MakeCode(ServiceWebQA, CategoryRequest, 2), 400, codes.InvalidArgument, "Question is required", "缺少问题"))
	ErrNoReadableContent = Register(New(MakeCode(ServiceWebQA, CategoryRequest, 3), 422, codes.FailedPrecondition, "No readable content found at URL", "页面没有可读内容"))
	ErrFetchPage         = Register(New(MakeCode(ServiceWebQA, CategoryNetwork, 1), 502, codes.Unavailable, "Failed to fetch URL", "页面抓取失败"))
	ErrSummarize         = Register(New(MakeCode(ServiceWebQA, CategoryNetwork, 2), 502, codes.Unavailable, "Failed to summarize page", "页面摘要失败"))
	ErrWebAnswer         = Register(New(MakeCode(ServiceWebQA, CategoryNetwork, 3), 502, codes.Unavailable, "Failed to generate answer", "答案生成失败"))
	ErrFetchTimeout      = Register(New(MakeCode(ServiceWebQA, CategoryTimeout, 1), 504, codes.DeadlineExceeded, "Timed out fetching URL", "页面抓取超时"))
)
