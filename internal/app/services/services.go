package services

// Services defined in this package:
// - AuthService: login, token refresh and profile for administrators/teachers
// - ClassService: class roster CRUD
// - StudentService: student roster CRUD
// - TransitionService: the academic year transition workflow (class
//   replication, staged assignments, auto-assignment, progress, confirmation,
//   execution, cleanup)
