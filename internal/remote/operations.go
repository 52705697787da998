package remote

// Query documents for the operations the course API exposes. Reply shapes
// are decoded by the callers.

const ListAllCourses = `query listAllCourses($private: Boolean) {
  listCourses(private: $private) {
    id
    title
    description
    start
    end
    private
    creator
  }
}`

const CreateCourse = `mutation createCourse($params: CourseInput!) {
  createCourse(params: $params) {
    id
    title
    description
    start
    end
    private
    creator
  }
}`

const UpdateCourseByID = `mutation updateCourseById($params: CourseUpdateInput!) {
  updateCourse(params: $params) {
    id
  }
}`

const RemoveCourseByID = `mutation removeCourseById($id: ID!) {
  removeCourse(id: $id)
}`

const UserCourse = `mutation userCourse($courseId: ID!, $userId: ID!) {
  createUserCourse(courseId: $courseId, userId: $userId) {
    id
  }
}`

const SearchCourseCreator = `query searchCourseCreator($id: ID!) {
  searchUser(id: $id) {
    id
    firstName
    secondName
  }
}`

const ListClasses = `query listClasses($params: ClassFilter) {
  listClasses(params: $params) {
    id
    vacancies
    room
    shift
    time
    instructor
    courseId
  }
}`

const SearchClassInstructor = `query searchClassInstructor($id: ID!) {
  searchUser(id: $id) {
    id
    firstName
    secondName
  }
}`

const CreateClass = `mutation createClass($params: ClassInput!) {
  createClass(params: $params) {
    id
  }
}`

const UpdateClass = `mutation updateClass($params: ClassUpdateInput!) {
  updateClass(params: $params) {
    id
  }
}`

const RemoveClass = `mutation removeClass($id: ID!) {
  removeClass(id: $id)
}`

const CreateClassUser = `mutation createClassUser($classId: ID!, $userId: ID!) {
  createClassUser(classId: $classId, userId: $userId) {
    id
  }
}`
