package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuestionPoolKey returns the cache key for the shared question pool.
func (r *CacheKeyStruct) QuestionPoolKey() string {
	return "questions:pool"
}

// SubjectListKey returns the cache key for the subject enumeration.
func (r *CacheKeyStruct) SubjectListKey() string {
	return "subjects:all"
}

var CacheKey = NewCacheKeyStruct()
