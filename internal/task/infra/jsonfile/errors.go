package jsonfile

import "errors"

// ErrUnreadableFile reports a tasks file that is valid JSON but not a task
// list this repository can read. The file is left as it is.
var ErrUnreadableFile = errors.New("tasks file cannot be read as a task list")
