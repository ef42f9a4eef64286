// Package docs Borehole Survey Microservice API.
//
// Микросервис пространственного отбора скважин и построения геологических
// разрезов. Хранит точки инженерно-геологических изысканий в сеточных
// координатах и выводит производные координаты преобразованиями между системами.
//
// Основные возможности:
// - Пространственный отбор скважин полигоном, прямоугольником или полилинией с буферным коридором
// - Построение буферного коридора вокруг полилинии в виде GeoJSON-полигона
// - Прямая наилучшего приближения по выбранным скважинам и их проекции вдоль разреза
// - Пакетная загрузка скважин с асинхронным обогащением координат
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
