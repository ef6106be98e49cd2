package graph

const createUserConstraint = `
	CREATE CONSTRAINT user_id_unique IF NOT EXISTS
	FOR (u:User) REQUIRE u.id IS UNIQUE
`

// Setting and removing a property takes the node write lock, held until the
// transaction ends.
const lockUsers = `
	UNWIND $ids AS id
	MERGE (u:User {id: id})
	ON CREATE SET u.created_at = datetime()
	SET u._lock = true
	REMOVE u._lock
`

const pairEdges = `
	MATCH (a:User {id: $a})-[r]-(b:User {id: $b})
	WHERE type(r) IN $kinds
	RETURN type(r) AS kind,
	       startNode(r).id AS from,
	       endNode(r).id AS to,
	       r.datetime AS created_at
`

// %s is the relationship type, see relType.
const deleteEdge = `
	MATCH (:User {id: $from})-[r:%s]->(:User {id: $to})
	DELETE r
`

const createEdge = `
	MATCH (f:User {id: $from}), (t:User {id: $to})
	CREATE (f)-[r:%s {datetime: datetime()}]->(t)
	RETURN r.datetime AS created_at
`

const acceptedNeighbours = `
	MATCH (u:User {id: $userID})-[:ACCEPTED]-(friend:User)
	WHERE friend.id <> $userID
	RETURN DISTINCT friend.id AS id
	ORDER BY id
`

const deleteUsersByPrefix = `
	MATCH (u:User)
	WHERE u.id STARTS WITH $prefix
	DETACH DELETE u
	RETURN count(u) AS deleted
`
