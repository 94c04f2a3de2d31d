package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для передачи литералов в поля-указатели
func Ptr[T any](v T) *T {
	return &v
}
