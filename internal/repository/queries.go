package repository

// Header fields shared by every document type.
const docHeaderFields = `
  id
  name
  documentType
  createdAtUtcIso
  lastModifiedAtUtcIso
  revision
`

// Organizations are stored as "Dao" documents.

const organizationStateFields = `
  name
  description
  ownerUserId
  members {
    id
    name
    role
    joinedAt
  }
`

const getOrganizationQuery = `
  query GetDao($docId: PHID!) {
    Dao {
      getDocument(docId: $docId) {
        ` + docHeaderFields + `
        state {
          ` + organizationStateFields + `
        }
      }
    }
  }
`

const listOrganizationsQuery = `
  query GetDaos($driveId: String!) {
    Dao {
      getDocuments(driveId: $driveId) {
        ` + docHeaderFields + `
        state {
          ` + organizationStateFields + `
        }
      }
    }
  }
`

const createOrganizationMutation = `
  mutation CreateDao($name: String!, $driveId: String) {
    Dao_createDocument(name: $name, driveId: $driveId)
  }
`

const setOrganizationNameMutation = `
  mutation SetDaoName($docId: PHID, $driveId: String, $input: Dao_SetDaoNameInput!) {
    Dao_setDaoName(docId: $docId, driveId: $driveId, input: $input)
  }
`

const setOrganizationDescriptionMutation = `
  mutation SetDaoDescription($docId: PHID, $driveId: String, $input: Dao_SetDaoDescriptionInput!) {
    Dao_setDaoDescription(docId: $docId, driveId: $driveId, input: $input)
  }
`

const setOrganizationOwnerMutation = `
  mutation SetDaoOwner($docId: PHID, $driveId: String, $input: Dao_SetDaoOwnerInput!) {
    Dao_setDaoOwner(docId: $docId, driveId: $driveId, input: $input)
  }
`

const proposalStateFields = `
  title
  description
  status
  createdBy
  createdAt
  daoId
  budget
  deadline
  closedAt
`

const getProposalQuery = `
  query GetProposal($docId: PHID!) {
    Proposal {
      getDocument(docId: $docId) {
        ` + docHeaderFields + `
        state {
          ` + proposalStateFields + `
        }
      }
    }
  }
`

const listProposalsQuery = `
  query GetProposals($driveId: String!) {
    Proposal {
      getDocuments(driveId: $driveId) {
        ` + docHeaderFields + `
        state {
          ` + proposalStateFields + `
        }
      }
    }
  }
`

const createProposalMutation = `
  mutation CreateProposal($name: String!, $driveId: String) {
    Proposal_createDocument(name: $name, driveId: $driveId)
  }
`

const setProposalDetailsMutation = `
  mutation SetProposalDetails($docId: PHID, $driveId: String, $input: Proposal_SetProposalDetailsInput!) {
    Proposal_setProposalDetails(docId: $docId, driveId: $driveId, input: $input)
  }
`

const updateProposalStatusMutation = `
  mutation UpdateProposalStatus($docId: PHID, $driveId: String, $input: Proposal_UpdateProposalStatusInput!) {
    Proposal_updateProposalStatus(docId: $docId, driveId: $driveId, input: $input)
  }
`

const taskStateFields = `
  title
  description
  status
  assignee
  proposalId
  daoId
  deadline
  budget
  createdAt
  createdBy
  updatedAt
`

const getTaskQuery = `
  query GetTask($docId: PHID!) {
    Task {
      getDocument(docId: $docId) {
        ` + docHeaderFields + `
        state {
          ` + taskStateFields + `
        }
      }
    }
  }
`

const listTasksQuery = `
  query GetTasks($driveId: String!) {
    Task {
      getDocuments(driveId: $driveId) {
        ` + docHeaderFields + `
        state {
          ` + taskStateFields + `
        }
      }
    }
  }
`

const createTaskMutation = `
  mutation CreateTask($name: String!, $driveId: String) {
    Task_createDocument(name: $name, driveId: $driveId)
  }
`

const setTaskDetailsMutation = `
  mutation SetTaskDetails($docId: PHID, $driveId: String, $input: Task_SetTaskDetailsInput!) {
    Task_setTaskDetails(docId: $docId, driveId: $driveId, input: $input)
  }
`

const updateTaskStatusMutation = `
  mutation UpdateTaskStatus($docId: PHID, $driveId: String, $input: Task_UpdateTaskStatusInput!) {
    Task_updateTaskStatus(docId: $docId, driveId: $driveId, input: $input)
  }
`

const assignTaskMutation = `
  mutation AssignTask($docId: PHID, $driveId: String, $input: Task_AssignTaskInput!) {
    Task_assignTask(docId: $docId, driveId: $driveId, input: $input)
  }
`

// deleteDocumentMutation hard-deletes any document type via the system endpoint.
const deleteDocumentMutation = `
  mutation DeleteDocument($id: PHID!) {
    deleteDocument(id: $id)
  }
`
