package logger

import "go.uber.org/zap"

func Any(key string, value any) Field {
	return zap.Any(key, value)
}

func String(key, value string) Field {
	return zap.String(key, value)
}

func Int(key string, value int) Field {
	return zap.Int(key, value)
}

func Int64(key string, value int64) Field {
	return zap.Int64(key, value)
}

func Bool(key string, value bool) Field {
	return zap.Bool(key, value)
}

func Error(err error) Field {
	return zap.Error(err)
}
