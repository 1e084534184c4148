// Package config loads .errfmt.toml and resolves named template presets.
//
// Назначение: найти файл конфигурации вверх по дереву каталогов, разобрать
// [defaults] и [presets], объединить пользовательские пресеты со встроенными.
//
// Не делает: разбор флагов CLI; флаги переопределяют значения отсюда в cmd.
package config
