// Package fuzztests houses Go fuzz harnesses for the template compiler and
// the line matcher. Its goal is to guard against panics, runaway
// backtracking and captures that do not reproduce the input line.
//
// Назначение: гонять произвольные шаблоны и строки через template.Compile и
// match.MatchCaptures, проверяя инварианты через testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/template, internal/match, internal/config,
// internal/testkit.

package fuzztests
