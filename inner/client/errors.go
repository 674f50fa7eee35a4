package client

// ErrorKind классификация отказов клиента
type ErrorKind string

const (
	// KindLocalValidation ошибка поймана до любого сетевого вызова
	KindLocalValidation ErrorKind = "local_validation"
	// KindNetwork транспорт недоступен
	KindNetwork ErrorKind = "network"
	// KindRemoteValidation сервер отклонил запрос с ошибками по полям
	KindRemoteValidation ErrorKind = "remote_validation"
	// KindRemoteFailure сервер отклонил запрос без деталей по полям
	KindRemoteFailure ErrorKind = "remote_failure"
	// KindNotFound запись не найдена
	KindNotFound ErrorKind = "not_found"
)

// Error ошибка операции клиента. Message всегда человекочитаемо:
// либо структурированное сообщение сервера, либо запасной текст операции
type Error struct {
	Kind    ErrorKind
	Message string
	// Fields ошибки по полям, когда сервер их вернул
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound проверяет, что ошибка означает отсутствие записи
func IsNotFound(err error) bool {
	clientErr, ok := err.(*Error)
	return ok && clientErr.Kind == KindNotFound
}
